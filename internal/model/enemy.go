package model

import "fmt"

// DefaultEnemyHealth is the health of an enemy built from a bare template name.
const DefaultEnemyHealth int32 = 100

// Enemy represents a hostile combatant built from a catalog template.
// Enemies live only for one battle.
type Enemy struct {
	name   string
	stats  Stats
	health int32
	weapon *Weapon
}

// NewEnemy creates an enemy with zero stats, 100 health and no weapon.
func NewEnemy(name string) *Enemy {
	return &Enemy{
		name:   name,
		health: DefaultEnemyHealth,
	}
}

// WithStats returns a copy with new stats and health reset to the new MaxHealth.
// The weapon is not carried over.
func (e *Enemy) WithStats(physique, technique, mystique int32) *Enemy {
	s := NewStats(physique, technique, mystique)
	return &Enemy{
		name:   e.name,
		stats:  s,
		health: s.MaxHealth(),
	}
}

// WithWeapon returns a copy carrying the given weapon; stats and health are kept.
func (e *Enemy) WithWeapon(name string, physique, technique, mystique, weight float32, value int32) *Enemy {
	w := NewWeapon(name, weight, value, physique, technique, mystique)
	return &Enemy{
		name:   e.name,
		stats:  e.stats,
		health: e.health,
		weapon: &w,
	}
}

// Name implements Combatant.
func (e *Enemy) Name() string { return e.name }

// CombatStats implements Combatant.
func (e *Enemy) CombatStats() Stats { return e.stats }

// Health returns current health (may be negative).
func (e *Enemy) Health() int32 { return e.health }

// Weapon returns the attached weapon, if any.
func (e *Enemy) Weapon() (Weapon, bool) {
	if e.weapon == nil {
		return Weapon{}, false
	}
	return *e.weapon, true
}

// IsDefeated reports whether health dropped below 1.
func (e *Enemy) IsDefeated() bool {
	return e.health < 1
}

// Damage implements Attacker.
// Enemies hit with raw physique; an attached weapon does not change it.
func (e *Enemy) Damage() int32 {
	return e.stats.Physique
}

// Defense implements Defender.
// Formula: len(name) / 2 (bytes, floor)
func (e *Enemy) Defense() int32 {
	return int32(len(e.name) / 2)
}

// TakeDamage implements Defender.
func (e *Enemy) TakeDamage(amount int32) {
	e.health -= amount
}

// String returns a short description.
func (e *Enemy) String() string {
	return fmt.Sprintf("Enemy{ name: %s, stats:%s }", e.name, e.stats)
}
