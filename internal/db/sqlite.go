package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/model"
)

// SQLiteCatalog реализует data.Catalog поверх файла SQLite.
type SQLiteCatalog struct {
	conn *sqlx.DB
}

// OpenSQLite opens or creates the SQLite catalog at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteCatalog, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := RunMigrations(ctx, conn.DB, DialectSQLite); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteCatalog{conn: conn}, nil
}

// Close closes the database connection.
func (c *SQLiteCatalog) Close() error {
	return c.conn.Close()
}

// ListEnemies implements data.Catalog.
func (c *SQLiteCatalog) ListEnemies(ctx context.Context) ([]data.EnemyTemplate, error) {
	var rows []enemyRow
	if err := c.conn.SelectContext(ctx, &rows, enemiesQuery); err != nil {
		return nil, fmt.Errorf("querying enemies: %w", err)
	}

	out := make([]data.EnemyTemplate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Template())
	}
	return out, nil
}

// ListWeapons implements data.Catalog.
func (c *SQLiteCatalog) ListWeapons(ctx context.Context) ([]model.Weapon, error) {
	var rows []weaponRow
	if err := c.conn.SelectContext(ctx, &rows, weaponsQuery); err != nil {
		return nil, fmt.Errorf("querying weapons: %w", err)
	}

	out := make([]model.Weapon, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Weapon())
	}
	return out, nil
}
