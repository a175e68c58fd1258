package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/model"
)

// PostgresCatalog реализует data.Catalog поверх PostgreSQL.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog connects to PostgreSQL and returns a catalog handle.
// Migrations are not applied here; see RunPostgresMigrations.
func NewPostgresCatalog(ctx context.Context, dsn string) (*PostgresCatalog, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresCatalog{pool: pool}, nil
}

// Close closes the connection pool.
func (c *PostgresCatalog) Close() error {
	c.pool.Close()
	return nil
}

// Pool returns the underlying pgx pool.
func (c *PostgresCatalog) Pool() *pgxpool.Pool {
	return c.pool
}

// ListEnemies implements data.Catalog.
func (c *PostgresCatalog) ListEnemies(ctx context.Context) ([]data.EnemyTemplate, error) {
	rows, err := c.pool.Query(ctx, enemiesQuery)
	if err != nil {
		return nil, fmt.Errorf("querying enemies: %w", err)
	}
	defer rows.Close()

	var out []data.EnemyTemplate
	for rows.Next() {
		var r enemyRow
		if err := rows.Scan(
			&r.Name, &r.Physique, &r.Technique, &r.Mystique,
			&r.WeaponName, &r.WeaponWeight, &r.WeaponValue,
			&r.WeaponPhysiqueScale, &r.WeaponTechniqueScale, &r.WeaponMystiqueScale,
		); err != nil {
			return nil, fmt.Errorf("scanning enemy row: %w", err)
		}
		out = append(out, r.Template())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enemy rows: %w", err)
	}
	return out, nil
}

// ListWeapons implements data.Catalog.
func (c *PostgresCatalog) ListWeapons(ctx context.Context) ([]model.Weapon, error) {
	rows, err := c.pool.Query(ctx, weaponsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying weapons: %w", err)
	}
	defer rows.Close()

	var out []model.Weapon
	for rows.Next() {
		var r weaponRow
		if err := rows.Scan(&r.Name, &r.Weight, &r.Value, &r.PhysiqueScale, &r.TechniqueScale, &r.MystiqueScale); err != nil {
			return nil, fmt.Errorf("scanning weapon row: %w", err)
		}
		out = append(out, r.Weapon())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weapon rows: %w", err)
	}
	return out, nil
}
