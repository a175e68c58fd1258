// Package session runs the main menu and the town loop of one game session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/game/character"
	"github.com/udisondev/quincy/internal/game/combat"
	"github.com/udisondev/quincy/internal/game/equip"
	"github.com/udisondev/quincy/internal/game/shop"
	"github.com/udisondev/quincy/internal/game/story"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/storage"
	"github.com/udisondev/quincy/internal/ui"
)

const banner = "*_*_*_*_*_*_*_*_*_*_*\nWelcome to Quincy RPG\n*_*_*_*_*_*_*_*_*_*_*\n"

// Main menu entries.
const (
	MenuNewGame = iota
	MenuLoadGame
	MenuViewCharacter
	MenuOptions
	MenuExit
)

// MenuLabels are the main menu options, indexed by Menu* constants.
var MenuLabels = []string{"New Game", "Load Game", "View Character", "Options", "Exit"}

// Town menu entries.
const (
	TownExplore = iota
	TownShop
	TownEquipment
	TownRest
	TownSave
)

// TownLabels are the town menu options, indexed by Town* constants.
var TownLabels = []string{"Explore", "Shop", "Equipment", "Rest", "Save"}

// Messages shown by the session.
const (
	LoadPrompt        = "What character do you want to load?"
	CreatedMessage    = "Character created!"
	NoNameMessage     = "Your character needs a name."
	CantLoadMessage   = "Can't load that character..."
	LoadFailedMessage = "Failed to load character."
	SavedMessage      = "Game saved!"
	SaveFailedMessage = "Failed to save character"
	TooWeakMessage    = "You are too weak to explore. Rest first."
	RestedMessage     = "You rest at the inn and recover your strength."
	OverwritePrompt   = "A character named %s already exists. Overwrite it?"
	KeptMessage       = "Your old character was kept."
)

// Session: одна игровая сессия: меню, город, бой, магазин.
// The session exclusively owns the active player.
type Session struct {
	cfg     config.Game
	prompt  ui.Prompter
	store   *storage.Store
	catalog data.Catalog
	rng     *rand.Rand
	story   *story.Story
	shop    *shop.Shop
}

// New creates a session.
func New(cfg config.Game, prompt ui.Prompter, store *storage.Store, catalog data.Catalog, rng *rand.Rand) *Session {
	return &Session{
		cfg:     cfg,
		prompt:  prompt,
		store:   store,
		catalog: catalog,
		rng:     rng,
		story:   story.New(prompt, store, cfg.Intro),
		shop:    shop.New(catalog, prompt),
	}
}

// Run shows the main menu until Exit is chosen or ctx is cancelled.
// Storage failures are reported to the player and never end the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		switch s.prompt.Choose(banner, MenuLabels, false) {
		case MenuNewGame:
			if err := s.newGame(ctx); err != nil {
				return err
			}
		case MenuLoadGame:
			if err := s.loadGame(ctx); err != nil {
				return err
			}
		case MenuViewCharacter:
			s.viewCharacter()
		case MenuOptions:
			s.prompt.Pause(s.options())
		default:
			slog.Info("session finished")
			return nil
		}
	}
}

func (s *Session) newGame(ctx context.Context) error {
	p, err := character.Create(s.prompt, s.cfg.NewCharacter)
	if errors.Is(err, character.ErrEmptyName) {
		s.prompt.Pause(NoNameMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating character: %w", err)
	}

	if s.store.Exists(p.Name()) && s.prompt.Choose(fmt.Sprintf(OverwritePrompt, p.Name()), ui.YesNo, false) != 0 {
		s.prompt.Pause(KeptMessage)
		return nil
	}
	if !s.save(p) {
		return nil
	}
	s.prompt.Pause(CreatedMessage)

	s.story.Continue(ctx, p)
	return s.Town(ctx, p)
}

func (s *Session) loadGame(ctx context.Context) error {
	p, err := s.store.Load(s.prompt.Input(s.loadPrompt()))
	if err != nil {
		slog.Warn("load failed", "error", err)
		s.prompt.Pause(CantLoadMessage)
		return nil
	}
	s.prompt.Pause(p.String())

	s.story.Continue(ctx, p)
	return s.Town(ctx, p)
}

func (s *Session) viewCharacter() {
	p, err := s.store.Load(s.prompt.Input(s.loadPrompt()))
	if err != nil {
		slog.Warn("view failed", "error", err)
		s.prompt.Pause(LoadFailedMessage)
		return
	}
	s.prompt.Pause(p.String())
}

// loadPrompt lists the saved characters under LoadPrompt.
func (s *Session) loadPrompt() string {
	names, err := s.store.List()
	if err != nil {
		slog.Warn("listing saves", "error", err)
		return LoadPrompt
	}
	if len(names) == 0 {
		return LoadPrompt + "\nNo saved characters."
	}
	return LoadPrompt + "\nSaved characters: " + strings.Join(names, ", ")
}

func (s *Session) options() string {
	return fmt.Sprintf("Options\nSave folder: %s\nCatalog: %s\nStarting money: $%s\nCreation points: %d",
		s.store.Root(), s.cfg.Database.Driver,
		humanize.Comma(int64(s.cfg.NewCharacter.StartingMoney)), s.cfg.NewCharacter.Points)
}

// Town runs the town menu for player until the player leaves.
func (s *Session) Town(ctx context.Context, p *model.Player) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		switch s.prompt.Choose(townHeader(p), TownLabels, true) {
		case TownExplore:
			if err := s.explore(ctx, p); err != nil {
				return err
			}
		case TownShop:
			if err := s.shop.Run(ctx, p); err != nil {
				return err
			}
		case TownEquipment:
			equip.Select(p, s.prompt)
		case TownRest:
			p.SetHealth(p.Stats().MaxHealth())
			s.prompt.Pause(RestedMessage)
		case TownSave:
			if s.save(p) {
				s.prompt.Pause(SavedMessage)
			}
		default:
			return nil
		}
	}
}

// explore fights a random catalog enemy. Flee is allowed outside the story.
func (s *Session) explore(ctx context.Context, p *model.Player) error {
	if p.IsDefeated() {
		s.prompt.Pause(TooWeakMessage)
		return nil
	}

	enemy, err := data.PickRandomEnemy(ctx, s.catalog, s.rng)
	if err != nil {
		return fmt.Errorf("picking encounter: %w", err)
	}
	slog.Info("encounter", "player", p.Name(), "enemy", enemy.String())

	b := combat.NewBattle(p, enemy, s.prompt)
	b.AllowFlee = true
	st := b.Run(ctx)
	slog.Info("encounter finished", "player", p.Name(), "enemy", enemy.Name(), "state", st.String())
	return nil
}

// save reports a failure to the player and returns false.
func (s *Session) save(p *model.Player) bool {
	if err := s.store.Save(p); err != nil {
		slog.Error("save failed", "player", p.Name(), "error", err)
		s.prompt.Pause(fmt.Sprintf("%s: %v", SaveFailedMessage, err))
		return false
	}
	return true
}

func townHeader(p *model.Player) string {
	weapon := model.UnarmedName
	if w, ok := p.Equipped(); ok {
		weapon = w.Name()
	}
	return fmt.Sprintf("You are in town.\n%s HP: %d/%d  SP: %d  MP: %d\nMoney: $%s\nWeapon: %s\nInventory [%s] (%s / %d)",
		p.Name(), p.Health(), p.Stats().MaxHealth(), p.Stamina(), p.Mana(),
		humanize.Comma(int64(p.Money())), weapon, p.ItemNames(),
		humanize.FtoaWithDigits(float64(p.CarryLoad()), 2), p.Stats().CarryCapacity())
}
