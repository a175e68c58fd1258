package combat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/ui"
)

// State: состояние боя.
type State int32

const (
	StateOngoing State = iota
	StatePlayerDefeated
	StateEnemyDefeated
	StateFled
	StateInterrupted
)

// String returns human-readable state name.
func (s State) String() string {
	switch s {
	case StateOngoing:
		return "Ongoing"
	case StatePlayerDefeated:
		return "PlayerDefeated"
	case StateEnemyDefeated:
		return "EnemyDefeated"
	case StateFled:
		return "Fled"
	case StateInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the battle is over.
func (s State) IsTerminal() bool {
	return s != StateOngoing
}

// Action: действие игрока за ход.
type Action int32

const (
	ActionAttack Action = iota
	ActionItem
	ActionFlee
)

// ActionLabels are the menu labels, indexed by Action.
var ActionLabels = []string{"Attack", "Item", "Flee"}

// Default battle messages.
const (
	DefaultItemBlockedMessage = "You have no usable items!"
	DefaultFleeRefusedMessage = "You try to flee, but you cannot escape!"
	DefaultFleeMessage        = "You got away safely."
	DefeatMessage             = "You died! Game over!"
	VictoryMessage            = "You win! Enemy died!"
)

// Battle: пошаговый бой игрока с одним противником.
//
// Battle loop:
//  1. Entry check: player health < 1 → PlayerDefeated; enemy health < 1 → EnemyDefeated
//  2. Player picks Attack / Item / Flee
//  3. Attack: the side with higher-or-equal technique strikes first (ties go
//     to the enemy); the other side strikes back only if still above 0 health
//  4. Item and Flee report a message and the loop continues
//
// With AllowFlee set, Flee ends the battle in StateFled.
type Battle struct {
	player *model.Player
	enemy  *model.Enemy
	prompt ui.Prompter

	// AllowFlee lets Flee end the battle. Scripted encounters leave it false.
	AllowFlee bool

	// Art is drawn on the battle screen above the enemy line.
	Art string

	ItemBlockedMessage string
	FleeRefusedMessage string

	fled     bool
	turns    int
	observer func(Outcome)
}

// NewBattle creates a battle with default messages and flee refused.
func NewBattle(player *model.Player, enemy *model.Enemy, prompt ui.Prompter) *Battle {
	return &Battle{
		player:             player,
		enemy:              enemy,
		prompt:             prompt,
		ItemBlockedMessage: DefaultItemBlockedMessage,
		FleeRefusedMessage: DefaultFleeRefusedMessage,
	}
}

// SetObserver sets a callback invoked after every resolved exchange.
func (b *Battle) SetObserver(fn func(Outcome)) {
	b.observer = fn
}

// Turns returns the number of turns played so far.
func (b *Battle) Turns() int {
	return b.turns
}

// State performs the entry check. Player defeat is checked first.
func (b *Battle) State() State {
	if b.fled {
		return StateFled
	}
	if b.player.IsDefeated() {
		return StatePlayerDefeated
	}
	if b.enemy.IsDefeated() {
		return StateEnemyDefeated
	}
	return StateOngoing
}

// EnemyStrikesFirst reports whether the enemy acts first on Attack.
func (b *Battle) EnemyStrikesFirst() bool {
	return b.enemy.CombatStats().Technique >= b.player.CombatStats().Technique
}

// Turn applies one player action and returns the resolved exchanges
// together with a message for non-attack actions.
// Turn on a finished battle is a no-op.
func (b *Battle) Turn(action Action) ([]Outcome, string) {
	if b.State().IsTerminal() {
		return nil, ""
	}
	b.turns++

	switch action {
	case ActionAttack:
		return b.exchange(), ""
	case ActionItem:
		return nil, b.ItemBlockedMessage
	case ActionFlee:
		if b.AllowFlee {
			b.fled = true
			return nil, DefaultFleeMessage
		}
		return nil, b.FleeRefusedMessage
	default:
		return nil, ""
	}
}

func (b *Battle) exchange() []Outcome {
	var first, second model.Fighter = b.player, b.enemy
	if b.EnemyStrikesFirst() {
		first, second = b.enemy, b.player
	}

	outcomes := make([]Outcome, 0, 2)
	outcomes = append(outcomes, b.strike(first, second))

	// Second strike only if the defender survived the first exchange.
	if second.Health() > 0 {
		outcomes = append(outcomes, b.strike(second, first))
	}
	return outcomes
}

func (b *Battle) strike(attacker model.Attacker, defender model.Defender) Outcome {
	out := Resolve(attacker, defender)
	slog.Debug("combat exchange",
		"attacker", attacker.Name(),
		"defender", defender.Name(),
		"damage", out.Damage)
	if b.observer != nil {
		b.observer(out)
	}
	return out
}

// Run drives the battle through the prompter until a terminal state.
// A cancelled ctx stops the battle with StateInterrupted and no further
// action is applied, including the choice that was pending at cancellation.
func (b *Battle) Run(ctx context.Context) State {
	for {
		if st := b.State(); st.IsTerminal() {
			b.finish(st)
			return st
		}
		if ctx.Err() != nil {
			return b.interrupt()
		}

		choice := b.prompt.Choose(b.Screen(), ActionLabels, false)
		if ctx.Err() != nil {
			return b.interrupt()
		}
		c := ui.Clamp(choice, len(ActionLabels), false)
		outcomes, msg := b.Turn(Action(c))
		if len(outcomes) > 0 {
			lines := make([]string, len(outcomes))
			for i, o := range outcomes {
				lines[i] = o.String()
			}
			msg = strings.Join(lines, "\n")
		}
		b.prompt.Pause(msg)
	}
}

func (b *Battle) interrupt() State {
	slog.Info("battle interrupted",
		"player", b.player.Name(),
		"enemy", b.enemy.Name(),
		"turns", b.turns)
	return StateInterrupted
}

func (b *Battle) finish(st State) {
	slog.Info("battle finished",
		"player", b.player.Name(),
		"enemy", b.enemy.Name(),
		"state", st.String(),
		"turns", b.turns,
		"playerHP", b.player.Health(),
		"enemyHP", b.enemy.Health())

	switch st {
	case StatePlayerDefeated:
		b.prompt.Pause(b.Screen() + "\n" + DefeatMessage)
	case StateEnemyDefeated:
		b.prompt.Pause(b.Screen() + "\n" + VictoryMessage)
	}
}

// Screen renders the battle screen header.
func (b *Battle) Screen() string {
	var sb strings.Builder
	sb.WriteString("This is the battle screen!\n")
	sb.WriteString("==========================\n")
	if b.Art != "" {
		sb.WriteString(b.Art)
		sb.WriteString("\n")
	}
	if b.EnemyStrikesFirst() {
		fmt.Fprintf(&sb, "%s is about to strike!(Strikes first)\n", b.enemy.Name())
	} else {
		fmt.Fprintf(&sb, "%s is about to strike!\n", b.enemy.Name())
	}
	fmt.Fprintf(&sb, "%s HP: %d\n\n", b.enemy.Name(), b.enemy.Health())
	fmt.Fprintf(&sb, "HP: %d\n", b.player.Health())
	fmt.Fprintf(&sb, "SP: %d\n", b.player.Stamina())
	fmt.Fprintf(&sb, "MP: %d\n", b.player.Mana())
	sb.WriteString("==========================")
	return sb.String()
}
