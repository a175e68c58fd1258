// Package character implements the interactive character creation screen.
package character

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/ui"
)

// ErrEmptyName is returned when the player enters no name.
var ErrEmptyName = errors.New("character name is empty")

// NamePrompt asks for the character name.
const NamePrompt = "What is the name of your character?"

// StatLabels are the stat allocation options, in Physique/Technique/Mystique order.
var StatLabels = []string{"Physique", "Technique", "Mystique"}

const statHelp = "Physique: Physical Damage, and major for Combat type people.\n" +
	"Technique: Technical Damage, and major for Agile type people.\n" +
	"Mystique: Mystical Damage, and major for Magic type people.\n"

// Create asks for a name and distributes rules.Points one at a time on top of
// rules.BaseStat in every attribute.
func Create(prompt ui.Prompter, rules config.NewCharacterConfig) (*model.Player, error) {
	name := strings.TrimSpace(prompt.Input(NamePrompt))
	if name == "" {
		return nil, ErrEmptyName
	}

	stats := model.NewStats(rules.BaseStat, rules.BaseStat, rules.BaseStat)
	for points := rules.Points; points > 0; points-- {
		c := ui.Clamp(prompt.Choose(allocationHeader(stats, points, rules.Points), StatLabels, false), len(StatLabels), false)
		switch c {
		case 0:
			stats.Physique++
		case 1:
			stats.Technique++
		default:
			stats.Mystique++
		}
	}

	p := model.NewPlayer(name, stats)
	p.SetMoney(rules.StartingMoney)

	slog.Info("character created", "player", name, "stats", stats.String())
	return p, nil
}

func allocationHeader(stats model.Stats, left, total int) string {
	var sb strings.Builder
	sb.WriteString(statHelp)
	switch {
	case left == total:
		sb.WriteString("Where do you want your first point to go?\n")
	case left > 1:
		sb.WriteString("Where do you want the next point to go?\n")
	default:
		sb.WriteString("Where do you want the last point to go?\n")
	}
	fmt.Fprintf(&sb, "Max Health: %d\nMax Stamina: %d\nMax Mana: %d\nPoints left: %d\nChoose Stats: ",
		stats.MaxHealth(), stats.MaxStamina(), stats.MaxMana(), left)
	return sb.String()
}
