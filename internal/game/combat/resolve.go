package combat

import (
	"fmt"

	"github.com/udisondev/quincy/internal/model"
)

// MinDamage is applied whenever the attack does not beat the defense.
const MinDamage int32 = 1

// Outcome: результат одного обмена ударами (для отчёта, не сохраняется).
type Outcome struct {
	Attacker model.Combatant
	Defender model.Combatant
	Damage   int32
}

// String returns the battle log line.
func (o Outcome) String() string {
	return fmt.Sprintf("%s attacked %s, for %d damage!", o.Attacker.Name(), o.Defender.Name(), o.Damage)
}

// CalcDamage returns the damage an attack deals against a defense.
// Formula: max(damage - defense, 1); never returns less than MinDamage.
func CalcDamage(attack, defense int32) int32 {
	if raw := attack - defense; raw > 0 {
		return raw
	}
	return MinDamage
}

// Resolve выполняет один удар attacker → defender и применяет урон.
//
// Deterministic: the result depends only on current stats and equipment.
// Every exchange deals at least 1 damage; there is no miss.
// Resolve does not check for death; callers inspect health afterwards.
func Resolve(attacker model.Attacker, defender model.Defender) Outcome {
	damage := CalcDamage(attacker.Damage(), defender.Defense())
	defender.TakeDamage(damage)
	return Outcome{
		Attacker: attacker,
		Defender: defender,
		Damage:   damage,
	}
}
