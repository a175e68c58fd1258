package model

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// UnarmedName is the name of the default weapon every character starts with.
const UnarmedName = "Hands"

// Item: предмет инвентаря (name, weight, value).
// Неизменяем после создания; идентичность только по имени (для отображения).
type Item struct {
	Name   string  `json:"name"`
	Weight float32 `json:"weight"`
	Value  int32   `json:"value"`
}

// NewItem создаёт новый предмет.
func NewItem(name string, weight float32, value int32) Item {
	return Item{
		Name:   name,
		Weight: weight,
		Value:  value,
	}
}

// String returns the item name.
func (i Item) String() string {
	return i.Name
}

// Weapon: предмет с коэффициентами масштабирования урона от атрибутов.
// Scale factors may be fractional or zero.
type Weapon struct {
	Item           Item    `json:"item"`
	PhysiqueScale  float32 `json:"physique_scale"`
	TechniqueScale float32 `json:"technique_scale"`
	MystiqueScale  float32 `json:"mystique_scale"`
}

// NewWeapon создаёт оружие с указанными коэффициентами.
func NewWeapon(name string, weight float32, value int32, physique, technique, mystique float32) Weapon {
	return Weapon{
		Item:           NewItem(name, weight, value),
		PhysiqueScale:  physique,
		TechniqueScale: technique,
		MystiqueScale:  mystique,
	}
}

// Unarmed returns the "Hands" weapon: zero weight and value, unit scales.
func Unarmed() Weapon {
	return NewWeapon(UnarmedName, 0, 0, 1, 1, 1)
}

// Name returns the weapon name.
func (w Weapon) Name() string {
	return w.Item.Name
}

// Value returns the weapon price.
func (w Weapon) Value() int32 {
	return w.Item.Value
}

// Damage returns the damage this weapon deals when wielded by a character
// with the given stats.
// Formula: trunc(pScale×physique + tScale×technique + mScale×mystique)
//
// The sum is evaluated in float32 and truncated toward zero.
func (w Weapon) Damage(stats Stats) int32 {
	sum := w.PhysiqueScale*float32(stats.Physique) +
		w.TechniqueScale*float32(stats.Technique) +
		w.MystiqueScale*float32(stats.Mystique)
	return int32(sum)
}

// Normalized returns a copy of the weapon with all scale factors reset to 1.
// Equipping a weapon applies this normalization.
func (w Weapon) Normalized() Weapon {
	w.PhysiqueScale = 1
	w.TechniqueScale = 1
	w.MystiqueScale = 1
	return w
}

// String returns the shop-style weapon description.
func (w Weapon) String() string {
	return fmt.Sprintf("%s, Physique: %s, Technique: %s, Mystique: %s, Value: %s, Weight: %s",
		w.Item,
		humanize.FtoaWithDigits(float64(w.PhysiqueScale), 2),
		humanize.FtoaWithDigits(float64(w.TechniqueScale), 2),
		humanize.FtoaWithDigits(float64(w.MystiqueScale), 2),
		humanize.Comma(int64(w.Item.Value)),
		humanize.FtoaWithDigits(float64(w.Item.Weight), 2),
	)
}
