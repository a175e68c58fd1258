package model

import "fmt"

// Stats: три основных атрибута персонажа.
// Все производные значения (HP, SP, MP, переносимый вес) считаются на лету
// и никогда не кэшируются.
type Stats struct {
	Physique  int32 `json:"physique" yaml:"physique"`
	Technique int32 `json:"technique" yaml:"technique"`
	Mystique  int32 `json:"mystique" yaml:"mystique"`
}

// NewStats создаёт Stats из трёх атрибутов.
func NewStats(physique, technique, mystique int32) Stats {
	return Stats{
		Physique:  physique,
		Technique: technique,
		Mystique:  mystique,
	}
}

// MaxHealth returns maximum health.
// Formula: 5×physique + 3×technique + 4×mystique + 20
func (s Stats) MaxHealth() int32 {
	return s.Physique*5 + s.Technique*3 + s.Mystique*4 + 20
}

// MaxStamina returns maximum stamina.
// Formula: 4×physique + 5×technique + 3×mystique + 20
func (s Stats) MaxStamina() int32 {
	return s.Physique*4 + s.Technique*5 + s.Mystique*3 + 20
}

// MaxMana returns maximum mana.
// Formula: 3×physique + 4×technique + 5×mystique + 20
func (s Stats) MaxMana() int32 {
	return s.Physique*3 + s.Technique*4 + s.Mystique*5 + 20
}

// CarryCapacity returns how much weight the character can carry.
// Formula: 10 + 5×physique
func (s Stats) CarryCapacity() int32 {
	return 10 + s.Physique*5
}

// Valid reports whether all attributes are non-negative.
func (s Stats) Valid() bool {
	return s.Physique >= 0 && s.Technique >= 0 && s.Mystique >= 0
}

// Total returns the sum of all three attributes.
func (s Stats) Total() int32 {
	return s.Physique + s.Technique + s.Mystique
}

// String returns human-readable attribute listing.
func (s Stats) String() string {
	return fmt.Sprintf("Physique: %d, Technique: %d, Mystique: %d", s.Physique, s.Technique, s.Mystique)
}
