// Package shop implements the merchant menus: buying weapons from the
// catalog and selling weapons from the inventory.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/ui"
)

// Merchant lines.
const (
	WelcomeMessage       = "Welcome to ye ol' shoppe! What must ye be buyin, or sellin?.."
	FarewellMessage      = "Cya later buddy!"
	PurchasedMessage     = "That shall serve you well!"
	CantAffordMessage    = "You idiot! You can't afford that, ye swindler!"
	NothingToSellMessage = "Ye can't sell, if ye has no valuables!"
)

// MenuLabels are the options of the shop front menu.
var MenuLabels = []string{"Buy", "Sell"}

// Shop: магазин оружия. Listings come from the catalog on every visit.
type Shop struct {
	catalog data.Catalog
	prompt  ui.Prompter
}

// New creates a shop backed by catalog.
func New(catalog data.Catalog, prompt ui.Prompter) *Shop {
	return &Shop{catalog: catalog, prompt: prompt}
}

// Run shows the front menu until the player quits.
func (s *Shop) Run(ctx context.Context, player *model.Player) error {
	for {
		switch s.prompt.Choose(WelcomeMessage, MenuLabels, true) {
		case 0:
			if err := s.Buy(ctx, player); err != nil {
				return err
			}
		case 1:
			s.Sell(player)
		default:
			s.prompt.Pause(FarewellMessage)
			return nil
		}
	}
}

// Buy lists the catalog weapons until the player quits.
// A purchase needs confirmation; money < value is refused without any
// state change.
func (s *Shop) Buy(ctx context.Context, player *model.Player) error {
	weapons, err := s.catalog.ListWeapons(ctx)
	if err != nil {
		return fmt.Errorf("listing shop weapons: %w", err)
	}

	labels := make([]string, len(weapons))
	for i, w := range weapons {
		labels[i] = w.String()
	}

	for {
		header := fmt.Sprintf("What ye be wantin to buy?\nHere are thee weapons I have to offer ye'!\nYe have $%s.\nYour inventory [%s].",
			humanize.Comma(int64(player.Money())), player.ItemNames())
		c := s.prompt.Choose(header, labels, true)
		if c == ui.Quit || c >= len(weapons) {
			return nil
		}
		w := weapons[c]

		confirm := fmt.Sprintf("Ye want to buy a %s, for $%s?", w, humanize.Comma(int64(w.Value())))
		if s.prompt.Choose(confirm, ui.YesNo, false) != 0 {
			continue
		}

		if err := player.Buy(w); err != nil {
			if errors.Is(err, model.ErrInsufficientFunds) {
				slog.Debug("purchase refused", "player", player.Name(), "weapon", w.Name(), "money", player.Money())
				s.prompt.Pause(CantAffordMessage)
				continue
			}
			return fmt.Errorf("buying %q: %w", w.Name(), err)
		}

		slog.Info("weapon bought", "player", player.Name(), "weapon", w.Name(), "price", w.Value(), "money", player.Money())
		s.prompt.Pause(PurchasedMessage)
	}
}

// Sell lists the inventory until the player quits or nothing is left.
// Only weapons can be sold; picking a plain item does nothing.
func (s *Shop) Sell(player *model.Player) {
	if player.Inventory().IsEmpty() {
		s.prompt.Pause(NothingToSellMessage)
		return
	}

	for !player.Inventory().IsEmpty() {
		header := fmt.Sprintf("What're ye sellin'!\nYour money $%s", humanize.Comma(int64(player.Money())))
		c := s.prompt.Choose(header, player.Inventory().Labels(), true)
		if c == ui.Quit {
			return
		}

		e, err := player.Inventory().At(c)
		if err != nil {
			continue
		}
		w, ok := e.Weapon()
		if !ok {
			continue
		}

		confirm := fmt.Sprintf("I'll take ye, %s for $%s\nYe be sure, ye want to sell thee?", w.Name(), humanize.Comma(int64(w.Value())))
		if s.prompt.Choose(confirm, ui.YesNo, true) != 0 {
			continue
		}

		if _, err := player.Sell(c); err != nil {
			slog.Warn("sell failed", "player", player.Name(), "index", c, "error", err)
			continue
		}
		slog.Info("weapon sold", "player", player.Name(), "weapon", w.Name(), "price", w.Value(), "money", player.Money())
	}
}
