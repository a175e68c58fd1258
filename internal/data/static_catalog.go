package data

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/quincy/internal/model"
)

//go:embed content.yaml
var defaultContent []byte

// contentFile is the YAML layout of content.yaml.
type contentFile struct {
	Enemies []enemyDef  `yaml:"enemies"`
	Weapons []WeaponDef `yaml:"weapons"`
}

type enemyDef struct {
	Name   string       `yaml:"name"`
	Stats  *model.Stats `yaml:"stats"`
	Weapon *WeaponDef   `yaml:"weapon"`
}

// StaticCatalog: каталог из YAML-документа (встроенного или с диска).
type StaticCatalog struct {
	enemies []EnemyTemplate
	weapons []model.Weapon
}

// DefaultCatalog returns the catalog built from the embedded content.yaml.
func DefaultCatalog() (*StaticCatalog, error) {
	return ParseCatalog(defaultContent)
}

// LoadCatalogFile reads a YAML content file from disk.
func LoadCatalogFile(path string) (*StaticCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	c, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog builds a StaticCatalog from YAML bytes.
func ParseCatalog(b []byte) (*StaticCatalog, error) {
	var f contentFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}

	c := &StaticCatalog{
		enemies: make([]EnemyTemplate, 0, len(f.Enemies)),
		weapons: make([]model.Weapon, 0, len(f.Weapons)),
	}
	for i, e := range f.Enemies {
		if e.Name == "" {
			return nil, fmt.Errorf("enemy #%d has no name", i)
		}
		t := EnemyTemplate{Name: e.Name, Stats: e.Stats}
		if e.Weapon != nil {
			w := e.Weapon.Weapon()
			t.Weapon = &w
		}
		c.enemies = append(c.enemies, t)
	}
	for i, w := range f.Weapons {
		if w.Name == "" {
			return nil, fmt.Errorf("weapon #%d has no name", i)
		}
		c.weapons = append(c.weapons, w.Weapon())
	}

	slog.Debug("parsed content", "enemies", len(c.enemies), "weapons", len(c.weapons))
	return c, nil
}

// ListEnemies implements Catalog.
func (c *StaticCatalog) ListEnemies(_ context.Context) ([]EnemyTemplate, error) {
	return append([]EnemyTemplate(nil), c.enemies...), nil
}

// ListWeapons implements Catalog.
func (c *StaticCatalog) ListWeapons(_ context.Context) ([]model.Weapon, error) {
	return append([]model.Weapon(nil), c.weapons...), nil
}
