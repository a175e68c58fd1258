package model

// Combatant: любая сущность, участвующая в бою (Player, Enemy).
type Combatant interface {
	Name() string
	CombatStats() Stats
}

// Attacker is the "can attack" capability.
type Attacker interface {
	Combatant
	Damage() int32
}

// Defender is the "can take hits" capability.
// TakeDamage subtracts from health without flooring at zero.
type Defender interface {
	Combatant
	Defense() int32
	TakeDamage(amount int32)
}

// Fighter holds both capabilities. Player and Enemy implement it.
type Fighter interface {
	Attacker
	Defender
	Health() int32
}

// BaseAttacker provides the default attack capability (0 damage).
// Embed it in a combatant that does not override Damage.
type BaseAttacker struct{}

// Damage returns 0.
func (BaseAttacker) Damage() int32 { return 0 }

// BaseDefender provides the default defense (0).
type BaseDefender struct{}

// Defense returns 0.
func (BaseDefender) Defense() int32 { return 0 }

var (
	_ Fighter = (*Player)(nil)
	_ Fighter = (*Enemy)(nil)
)
