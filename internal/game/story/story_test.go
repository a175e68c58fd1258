package story

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/game/combat"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/testutil"
	"github.com/udisondev/quincy/internal/ui"
)

func TestIntro_Victory(t *testing.T) {
	store := testutil.TempStore(t)
	p := model.NewPlayer("Quincy", model.NewStats(10, 1, 1))

	// Item, Flee, then four attacks finish the rabbit.
	prompt := testutil.NewPrompter(t, 1, 2, 0, 0, 0, 0)
	st := New(prompt, store, config.DefaultGame().Intro).Intro(context.Background(), p)

	assert.Equal(t, combat.StateEnemyDefeated, st)
	assert.Equal(t, 0, prompt.Remaining())

	// 77 / 2 = 38, then one point per enemy strike.
	assert.Equal(t, int32(34), p.Health())

	assert.Equal(t, introLines[0], prompt.Pauses[0])
	assert.True(t, prompt.Paused(MuggedMessage))
	assert.True(t, prompt.Paused(BunnyFleeMessage))
	assert.True(t, prompt.Paused("Quincy attacked Rabbit, for 9 damage!"))
	assert.True(t, prompt.Paused(combat.VictoryMessage))
	assert.Contains(t, prompt.Headers[0], BunnyArt)

	v, ok := p.Trigger(IntroTrigger)
	assert.True(t, ok)
	assert.True(t, v)

	loaded, err := store.Load("Quincy")
	require.NoError(t, err)
	v, ok = loaded.Trigger(IntroTrigger)
	assert.True(t, ok && v, "trigger persisted")
	assert.Equal(t, p.Health(), loaded.Health())
}

func TestIntro_DefeatStillSetsTrigger(t *testing.T) {
	store := testutil.TempStore(t)
	p := model.NewPlayer("Weakling", model.NewStats(1, 1, 1))

	// 16 HP, one point lost per turn; the rabbit strikes first.
	choices := make([]int, 16)
	prompt := testutil.NewPrompter(t, choices...)
	st := New(prompt, store, config.DefaultGame().Intro).Intro(context.Background(), p)

	assert.Equal(t, combat.StatePlayerDefeated, st)
	assert.True(t, prompt.Paused(combat.DefeatMessage))
	assert.True(t, p.HasStarted())
	assert.True(t, store.Exists("Weakling"))
}

type failingSaver struct{}

func (failingSaver) Save(*model.Player) error { return errors.New("disk full") }

func TestIntro_SaveFailureReported(t *testing.T) {
	p := model.NewPlayer("Quincy", model.NewStats(10, 1, 1))
	prompt := testutil.NewPrompter(t, 0, 0, 0, 0)

	st := New(prompt, failingSaver{}, config.DefaultGame().Intro).Intro(context.Background(), p)

	assert.Equal(t, combat.StateEnemyDefeated, st)
	assert.True(t, prompt.Paused(SaveFailedMessage+": disk full"))
	assert.True(t, p.HasStarted())
}

func TestContinue_SkipsIntroOnceStarted(t *testing.T) {
	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	p.SetTrigger(IntroTrigger, true)
	prompt := testutil.NewPrompter(t)

	New(prompt, failingSaver{}, config.DefaultGame().Intro).Continue(context.Background(), p)

	assert.Empty(t, prompt.Pauses)
	assert.Equal(t, p.Stats().MaxHealth(), p.Health())
}

func TestIntro_InterruptedLeavesSlotUntouched(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := testutil.TempStore(t)
	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	tui := ui.NewTUI(ctx)

	st := New(tui, store, config.DefaultGame().Intro).Intro(tui.Context(), p)

	assert.Equal(t, combat.StateInterrupted, st)
	assert.False(t, p.HasStarted())
	assert.False(t, store.Exists("Quincy"), "interrupted intro is not saved")
}

func TestIntro_InterruptedKeepsPreviousSave(t *testing.T) {
	store := testutil.TempStore(t)
	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	require.NoError(t, store.Save(p))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	New(ui.NewTUI(ctx), store, config.DefaultGame().Intro).Continue(ctx, p)

	loaded, err := store.Load("Quincy")
	require.NoError(t, err)
	assert.False(t, loaded.HasStarted())
	assert.Equal(t, loaded.Stats().MaxHealth(), loaded.Health())
}
