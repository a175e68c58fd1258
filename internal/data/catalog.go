package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/quincy/internal/model"
)

var (
	ErrNoEnemies = errors.New("catalog has no enemies")
	ErrNoWeapons = errors.New("catalog has no weapons")
)

// Catalog: read-only источник шаблонов противников и оружия для магазина.
type Catalog interface {
	ListEnemies(ctx context.Context) ([]EnemyTemplate, error)
	ListWeapons(ctx context.Context) ([]model.Weapon, error)
}

// EnemyTemplate describes how to build an Enemy for an encounter.
// Stats and Weapon are optional seeds for WithStats / WithWeapon.
type EnemyTemplate struct {
	Name   string
	Stats  *model.Stats
	Weapon *model.Weapon
}

// Spawn builds a fresh Enemy from the template.
func (t EnemyTemplate) Spawn() *model.Enemy {
	e := model.NewEnemy(t.Name)
	if t.Stats != nil {
		e = e.WithStats(t.Stats.Physique, t.Stats.Technique, t.Stats.Mystique)
	}
	if w := t.Weapon; w != nil {
		e = e.WithWeapon(w.Name(), w.PhysiqueScale, w.TechniqueScale, w.MystiqueScale, w.Item.Weight, w.Item.Value)
	}
	return e
}

// WeaponDef: строка каталога оружия (YAML content / SQL table weapons).
type WeaponDef struct {
	Name           string  `yaml:"name" db:"name"`
	Weight         float32 `yaml:"weight" db:"weight"`
	Value          int32   `yaml:"value" db:"value"`
	PhysiqueScale  float32 `yaml:"physique_scale" db:"physique_scale"`
	TechniqueScale float32 `yaml:"technique_scale" db:"technique_scale"`
	MystiqueScale  float32 `yaml:"mystique_scale" db:"mystique_scale"`
}

// Weapon converts the definition into a model weapon.
func (d WeaponDef) Weapon() model.Weapon {
	return model.NewWeapon(d.Name, d.Weight, d.Value, d.PhysiqueScale, d.TechniqueScale, d.MystiqueScale)
}

// PickRandomEnemy выбирает случайный шаблон и создаёт из него Enemy.
// Returns ErrNoEnemies when the catalog is empty.
func PickRandomEnemy(ctx context.Context, c Catalog, rng *rand.Rand) (*model.Enemy, error) {
	enemies, err := c.ListEnemies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing enemies: %w", err)
	}
	if len(enemies) == 0 {
		return nil, ErrNoEnemies
	}
	return enemies[rng.IntN(len(enemies))].Spawn(), nil
}

// FindEnemy returns the template with the given name.
func FindEnemy(ctx context.Context, c Catalog, name string) (EnemyTemplate, bool, error) {
	enemies, err := c.ListEnemies(ctx)
	if err != nil {
		return EnemyTemplate{}, false, fmt.Errorf("listing enemies: %w", err)
	}
	for _, e := range enemies {
		if e.Name == name {
			return e, true, nil
		}
	}
	return EnemyTemplate{}, false, nil
}

// Cached: каталог, загруженный в память один раз при старте.
type Cached struct {
	enemies []EnemyTemplate
	weapons []model.Weapon
}

// Preload reads enemies and weapons from src concurrently and keeps them in memory.
//
// An empty enemy list is a startup configuration fault (ErrNoEnemies):
// no encounter can be built without it. An empty weapon list only
// leaves the shop empty and is logged.
func Preload(ctx context.Context, src Catalog) (*Cached, error) {
	c := &Cached{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enemies, err := src.ListEnemies(gctx)
		if err != nil {
			return fmt.Errorf("loading enemies: %w", err)
		}
		c.enemies = enemies
		return nil
	})
	g.Go(func() error {
		weapons, err := src.ListWeapons(gctx)
		if err != nil {
			return fmt.Errorf("loading weapons: %w", err)
		}
		c.weapons = weapons
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(c.enemies) == 0 {
		return nil, ErrNoEnemies
	}
	if len(c.weapons) == 0 {
		slog.Warn("catalog has no weapons, shop will be empty")
	}

	slog.Info("catalog loaded", "enemies", len(c.enemies), "weapons", len(c.weapons))
	return c, nil
}

// ListEnemies implements Catalog.
func (c *Cached) ListEnemies(_ context.Context) ([]EnemyTemplate, error) {
	return append([]EnemyTemplate(nil), c.enemies...), nil
}

// ListWeapons implements Catalog.
func (c *Cached) ListWeapons(_ context.Context) ([]model.Weapon, error) {
	return append([]model.Weapon(nil), c.weapons...), nil
}
