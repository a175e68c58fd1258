// Package equip implements the equipment menu: swapping the equipped weapon
// with one from the inventory.
package equip

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/ui"
)

const switchPrompt = "Switch to which weapon?"

// Select runs the "change equipped weapon" loop until the player declines.
// Non-weapon entries can be highlighted but picking one does nothing.
// Returns the number of swaps made.
func Select(player *model.Player, prompt ui.Prompter) int {
	if player.Inventory().IsEmpty() {
		return 0
	}

	swaps := 0
	for {
		if prompt.Choose(header(player), ui.YesNo, true) != 0 {
			return swaps
		}

		labels := player.Inventory().Labels()
		c := prompt.Choose(switchPrompt, labels, true)
		if c == ui.Quit {
			continue
		}

		w, err := player.EquipFromInventory(c)
		switch {
		case err == nil:
			swaps++
			slog.Info("weapon equipped", "player", player.Name(), "weapon", w.Name())
			prompt.Pause(fmt.Sprintf("Swapped to the %s!", w.Name()))
		case errors.Is(err, model.ErrNotAWeapon), errors.Is(err, model.ErrInvalidSelection):
			slog.Debug("equip skipped", "player", player.Name(), "index", c, "error", err)
		default:
			slog.Warn("equip failed", "player", player.Name(), "error", err)
		}
	}
}

func header(player *model.Player) string {
	current := "nothing"
	if w, ok := player.Equipped(); ok {
		current = w.String()
	}
	return fmt.Sprintf("Do you want to change your equipped weapon?\nYour current one is: %s\n", current)
}
