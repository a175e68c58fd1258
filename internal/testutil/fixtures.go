package testutil

import (
	"testing"

	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/storage"
)

// Fixtures содержит тестовые данные, общие для пакетов игры.
var Fixtures = struct {
	Dagger     model.Weapon
	ShortSword model.Weapon
	WarAxe     model.Weapon
	Rock       model.Item
}{
	Dagger:     model.NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0),
	ShortSword: model.NewWeapon("Short Sword", 3, 50, 1.2, 0.8, 0),
	WarAxe:     model.NewWeapon("War Axe", 8, 150, 2, 0.2, 0),
	Rock:       model.NewItem("Rock", 2, 0),
}

// TempStore returns a storage.Store rooted in a fresh temp directory.
func TempStore(tb testing.TB) *storage.Store {
	tb.Helper()
	s := storage.NewStore(tb.TempDir())
	if err := s.EnsureRoot(); err != nil {
		tb.Fatalf("ensuring storage root: %v", err)
	}
	return s
}
