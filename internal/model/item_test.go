package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestWeapon_Damage(t *testing.T) {
	tests := []struct {
		name   string
		weapon Weapon
		stats  Stats
		want   int32
	}{
		{"hands sum all stats", Unarmed(), NewStats(10, 1, 1), 12},
		{"fractional exact", NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0), NewStats(1, 1, 1), 2},
		{"truncated toward zero", NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0), NewStats(3, 0, 0), 1},
		{"below one truncates to zero", NewWeapon("Twig", 0, 0, 0.5, 0, 0), NewStats(1, 0, 0), 0},
		{"zero scales", NewWeapon("Prop", 0, 0, 0, 0, 0), NewStats(9, 9, 9), 0},
		{"mystique only", NewWeapon("Staff", 4, 60, 0, 0, 2), NewStats(5, 5, 3), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.weapon.Damage(tt.stats); got != tt.want {
				t.Errorf("Damage(%v) = %d, want %d", tt.stats, got, tt.want)
			}
		})
	}
}

func TestWeapon_DamageLinear(t *testing.T) {
	w := NewWeapon("Axe", 8, 150, 2, 0.5, 0.25)
	base := NewStats(4, 4, 4)

	for k := int32(1); k <= 8; k++ {
		scaled := NewStats(base.Physique*k, base.Technique*k, base.Mystique*k)
		if got, want := w.Damage(scaled), w.Damage(base)*k; got != want {
			t.Errorf("k=%d: Damage = %d, want %d", k, got, want)
		}
	}
}

func TestWeapon_Normalized(t *testing.T) {
	w := NewWeapon("Bow", 2, 80, 0.3, 1.4, 0.2)
	n := w.Normalized()

	if n.PhysiqueScale != 1 || n.TechniqueScale != 1 || n.MystiqueScale != 1 {
		t.Errorf("Normalized() scales = %v/%v/%v, want 1/1/1", n.PhysiqueScale, n.TechniqueScale, n.MystiqueScale)
	}
	if n.Item != w.Item {
		t.Errorf("Normalized() changed item: %v", n.Item)
	}
	if w.PhysiqueScale != 0.3 {
		t.Error("Normalized() mutated the receiver")
	}
}

func TestWeapon_String(t *testing.T) {
	got := NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0).String()
	want := "Dagger, Physique: 0.5, Technique: 1.5, Mystique: 0, Value: 25, Weight: 1"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUnarmed(t *testing.T) {
	h := Unarmed()
	if h.Name() != UnarmedName || h.Value() != 0 || h.Item.Weight != 0 {
		t.Errorf("Unarmed() = %+v", h)
	}
}

func TestEntry_JSON(t *testing.T) {
	rock := ItemEntry(NewItem("Rock", 2, 0))
	b, err := json.Marshal(rock)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"Item":{"name":"Rock","weight":2,"value":0}}`; string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var back Entry
	if err := json.Unmarshal([]byte(`{"Weapon":{"item":{"name":"Dagger","weight":1,"value":25},"physique_scale":0.5,"technique_scale":1.5,"mystique_scale":0}}`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	w, ok := back.Weapon()
	if !ok || w != NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0) {
		t.Errorf("Unmarshal weapon = %+v, %v", w, ok)
	}
}

func TestEntry_UnmarshalErrors(t *testing.T) {
	for _, in := range []string{
		`{"Shield":{"name":"x"}}`,
		`{"Item":{},"Weapon":{}}`,
		`{}`,
		`[]`,
	} {
		var e Entry
		if err := json.Unmarshal([]byte(in), &e); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", in)
		}
	}
}

func TestInventory_Order(t *testing.T) {
	inv := NewInventory(
		ItemEntry(NewItem("Rock", 2, 0)),
		WeaponEntry(NewWeapon("Dagger", 1, 25, 0.5, 1.5, 0)),
		ItemEntry(NewItem("Rope", 1, 3)),
	)

	if got := inv.Names(); got != "Rock, Dagger, Rope" {
		t.Errorf("Names() = %q", got)
	}
	if got := inv.TotalWeight(); got != 4 {
		t.Errorf("TotalWeight() = %v, want 4", got)
	}

	if _, err := inv.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt(1): %v", err)
	}
	inv.Add(ItemEntry(NewItem("Torch", 1, 2)))
	if got := inv.Names(); got != "Rock, Rope, Torch" {
		t.Errorf("after remove+add Names() = %q", got)
	}

	if _, err := inv.At(3); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("At(3) err = %v, want ErrInvalidSelection", err)
	}
	if _, err := inv.RemoveAt(-1); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("RemoveAt(-1) err = %v, want ErrInvalidSelection", err)
	}
}

func TestInventory_Empty(t *testing.T) {
	var inv Inventory
	if inv.Names() != "None" {
		t.Errorf("Names() = %q, want None", inv.Names())
	}
	b, err := json.Marshal(inv)
	if err != nil || string(b) != "[]" {
		t.Errorf("Marshal empty = %s, %v", b, err)
	}
}
