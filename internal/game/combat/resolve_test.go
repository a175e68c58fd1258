package combat

import (
	"testing"

	"github.com/udisondev/quincy/internal/model"
)

func TestCalcDamage(t *testing.T) {
	tests := []struct {
		attack, defense, want int32
	}{
		{12, 3, 9},
		{4, 3, 1},
		{3, 3, 1},
		{0, 3, 1},
		{0, 0, 1},
		{-5, 0, 1},
		{100, 0, 100},
	}
	for _, tt := range tests {
		if got := CalcDamage(tt.attack, tt.defense); got != tt.want {
			t.Errorf("CalcDamage(%d, %d) = %d, want %d", tt.attack, tt.defense, got, tt.want)
		}
	}
}

func TestCalcDamage_AlwaysPositive(t *testing.T) {
	for a := int32(-10); a <= 30; a++ {
		for d := int32(0); d <= 30; d++ {
			got := CalcDamage(a, d)
			if got < MinDamage {
				t.Fatalf("CalcDamage(%d, %d) = %d, want >= 1", a, d, got)
			}
			if a <= d && got != MinDamage {
				t.Fatalf("CalcDamage(%d, %d) = %d, want floor 1", a, d, got)
			}
		}
	}
}

// Scenario: physique 10 with bare hands against a 1/1/1 rabbit.
func TestResolve_PlayerHitsRabbit(t *testing.T) {
	p := model.NewPlayer("Quincy", model.NewStats(10, 1, 1))
	rabbit := model.NewEnemy("Rabbit").WithStats(1, 1, 1)

	if rabbit.Health() != 32 {
		t.Fatalf("rabbit health = %d, want 32", rabbit.Health())
	}

	out := Resolve(p, rabbit)
	if out.Damage != 9 {
		t.Errorf("Damage = %d, want 9", out.Damage)
	}
	if rabbit.Health() != 23 {
		t.Errorf("rabbit health = %d, want 23", rabbit.Health())
	}
	if got := out.String(); got != "Quincy attacked Rabbit, for 9 damage!" {
		t.Errorf("String() = %q", got)
	}
}

func TestResolve_MinimumDamage(t *testing.T) {
	p := model.NewPlayer("Tank", model.NewStats(20, 1, 1))
	rabbit := model.NewEnemy("Rabbit").WithStats(1, 1, 1)

	out := Resolve(rabbit, p)
	if out.Damage != 1 {
		t.Errorf("Damage = %d, want floor 1", out.Damage)
	}
	if p.Health() != p.Stats().MaxHealth()-1 {
		t.Errorf("player health = %d", p.Health())
	}
}

func TestResolve_NoDeathCheck(t *testing.T) {
	p := model.NewPlayer("Quincy", model.NewStats(10, 1, 1))
	rabbit := model.NewEnemy("Rabbit").WithStats(1, 1, 1)

	for range 5 {
		Resolve(p, rabbit)
	}
	if rabbit.Health() != 32-45 {
		t.Errorf("rabbit health = %d, want %d", rabbit.Health(), 32-45)
	}
	if !rabbit.IsDefeated() {
		t.Error("rabbit must be defeated")
	}
}

// scarecrow relies on the default capabilities: no damage, no defense.
type scarecrow struct {
	model.BaseAttacker
	model.BaseDefender
	hp int32
}

func (s *scarecrow) Name() string             { return "Scarecrow" }
func (s *scarecrow) CombatStats() model.Stats { return model.Stats{} }
func (s *scarecrow) TakeDamage(amount int32)  { s.hp -= amount }

func TestResolve_DefaultCapabilities(t *testing.T) {
	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	sc := &scarecrow{hp: 10}

	// Default damage 0 still lands the minimum hit.
	out := Resolve(sc, p)
	if out.Damage != MinDamage {
		t.Errorf("Damage = %d, want %d", out.Damage, MinDamage)
	}
	if p.Health() != 31 {
		t.Errorf("player health = %d, want 31", p.Health())
	}

	// Default defense 0 takes the full attack: Hands deal 1+1+1.
	out = Resolve(p, sc)
	if out.Damage != 3 || sc.hp != 7 {
		t.Errorf("Damage = %d, scarecrow hp = %d; want 3, 7", out.Damage, sc.hp)
	}
}
