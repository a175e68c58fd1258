// Package story delivers the narrative and the scripted encounters that
// gate it.
package story

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/game/combat"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/ui"
)

// IntroTrigger is set once the introduction has been played.
const IntroTrigger = "char_intro"

// Intro battle lines.
const (
	BunnyArt          = "(\\_/)\n(>.<)\n(\")_(\")\n"
	MuggedMessage     = "You dont have any items because you were mugged.."
	BunnyFleeMessage  = "You try to flee, but the bunny overpowers you, and forces you to magically fight!"
	SaveFailedMessage = "Failed to save your progress"
)

var introLines = []string{
	"Ahoy there, traveler! Would ye be interested in helpn' dis ol' merchant with a task?",
	"The task be simple, ya! You help me travel to the next city over yonder. (Points eastwards)",
	"Then i'll pay yee when we get to the city, ya?",
	"Alright! Sounds great. Let's get going'",
	"Hours later after traveling for the rest of the day. You wake up with masked shadow figures over your tent!",
	"They attack you visciously, knock you out, and take all your belongings.",
	"You feel a massive splash of water as you go in and out of conciousness.",
	"You wake up hours later..With no food and water..",
	"Those bastards took all of your equipment, you need to head to the nearest town to fully recover..",
	"As you fumble around along a dirt path back to any nearby civilization..you hear rustling in the bushes from the forst!",
	"You get ready for anythin!",
	"Out of the bushes come a tiny, but a rabid and agitated animal ready to strike!",
	"You must fight it off or die! Even if you only have half of your strength left..",
}

// Saver persists a player.
type Saver interface {
	Save(p *model.Player) error
}

// Story: сюжет: вступление и проверка триггеров.
type Story struct {
	prompt ui.Prompter
	saver  Saver
	intro  config.IntroConfig
}

// New creates a story runner.
func New(prompt ui.Prompter, saver Saver, intro config.IntroConfig) *Story {
	return &Story{prompt: prompt, saver: saver, intro: intro}
}

// Continue plays whatever the player has not seen yet.
// A player without any trigger gets the introduction.
func (s *Story) Continue(ctx context.Context, player *model.Player) {
	if !player.HasStarted() {
		s.Intro(ctx, player)
	}
}

// Intro plays the introduction: narrative, then a forced fight at reduced
// health where Item and Flee are refused. The intro trigger is set and the
// player saved whatever the outcome; a failed save is reported, not fatal.
// An interrupted intro leaves the trigger unset and the slot untouched, so
// the intro replays on the next load.
func (s *Story) Intro(ctx context.Context, player *model.Player) combat.State {
	for _, line := range introLines {
		s.prompt.Pause(line)
	}

	player.SetHealth(int32(float64(player.Stats().MaxHealth()) * s.intro.HealthPct))

	enemy := model.NewEnemy(s.intro.Enemy).WithStats(s.intro.Physique, s.intro.Technique, s.intro.Mystique)
	b := combat.NewBattle(player, enemy, s.prompt)
	b.Art = BunnyArt
	b.ItemBlockedMessage = MuggedMessage
	b.FleeRefusedMessage = BunnyFleeMessage
	st := b.Run(ctx)

	slog.Debug("intro enemy", "enemy", enemy.String())
	if st == combat.StateInterrupted {
		slog.Info("intro interrupted, progress not saved", "player", player.Name())
		return st
	}

	player.SetTrigger(IntroTrigger, true)
	if err := s.saver.Save(player); err != nil {
		slog.Error("saving after intro", "player", player.Name(), "error", err)
		s.prompt.Pause(fmt.Sprintf("%s: %v", SaveFailedMessage, err))
	}
	return st
}
