package session

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/data"
	"github.com/udisondev/quincy/internal/game/combat"
	"github.com/udisondev/quincy/internal/game/story"
	"github.com/udisondev/quincy/internal/model"
	"github.com/udisondev/quincy/internal/storage"
	"github.com/udisondev/quincy/internal/testutil"
	"github.com/udisondev/quincy/internal/ui"
)

const rabbitOnly = `
enemies:
  - name: Rabbit
    stats: {physique: 1, technique: 1, mystique: 1}
weapons:
  - {name: Dagger, weight: 1, value: 25, physique_scale: 0.5, technique_scale: 1.5, mystique_scale: 0}
`

func newSession(t *testing.T, prompt ui.Prompter) (*Session, *storage.Store) {
	t.Helper()
	catalog, err := data.ParseCatalog([]byte(rabbitOnly))
	require.NoError(t, err)
	store := testutil.TempStore(t)
	return New(config.DefaultGame(), prompt, store, catalog, rand.New(rand.NewPCG(1, 2))), store
}

func seq(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestRun_NewGame(t *testing.T) {
	var choices []int
	choices = append(choices, MenuNewGame)
	choices = append(choices, seq(5, 0)...) // all points into Physique: (6,1,1)
	choices = append(choices, seq(7, 0)...) // seven attacks kill the rabbit
	choices = append(choices, ui.Quit, MenuExit)

	prompt := testutil.NewPrompter(t, choices...).WithInputs("Quincy")
	s, store := newSession(t, prompt)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 0, prompt.Remaining())
	assert.True(t, prompt.Paused(CreatedMessage))
	assert.True(t, prompt.Paused(combat.VictoryMessage))

	p, err := store.Load("Quincy")
	require.NoError(t, err)
	assert.Equal(t, model.NewStats(6, 1, 1), p.Stats())
	v, ok := p.Trigger(story.IntroTrigger)
	assert.True(t, ok && v)
	// 57 / 2 = 28, minus one per rabbit strike.
	assert.Equal(t, int32(21), p.Health())
}

func TestRun_NewGameEmptyName(t *testing.T) {
	prompt := testutil.NewPrompter(t, MenuNewGame, MenuExit).WithInputs("")
	s, store := newSession(t, prompt)

	require.NoError(t, s.Run(context.Background()))
	assert.True(t, prompt.Paused(NoNameMessage))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRun_LoadGameRestAndSave(t *testing.T) {
	prompt := testutil.NewPrompter(t, MenuLoadGame, TownRest, TownSave, ui.Quit, MenuExit).WithInputs("Quincy")
	s, store := newSession(t, prompt)

	saved := model.NewPlayer("Quincy", model.NewStats(2, 2, 2))
	saved.SetTrigger(story.IntroTrigger, true)
	saved.SetHealth(3)
	require.NoError(t, store.Save(saved))

	require.NoError(t, s.Run(context.Background()))
	assert.True(t, prompt.Paused(saved.String()), "character sheet shown after load")
	assert.True(t, prompt.Paused(RestedMessage))
	assert.True(t, prompt.Paused(SavedMessage))
	assert.False(t, prompt.Paused(story.MuggedMessage), "intro not replayed")

	p, err := store.Load("Quincy")
	require.NoError(t, err)
	assert.Equal(t, p.Stats().MaxHealth(), p.Health())
}

func TestRun_LoadMissing(t *testing.T) {
	prompt := testutil.NewPrompter(t, MenuLoadGame, MenuViewCharacter, MenuExit).WithInputs("Nobody", "../etc")
	s, _ := newSession(t, prompt)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{CantLoadMessage, LoadFailedMessage}, prompt.Pauses)
}

func TestRun_ViewCharacter(t *testing.T) {
	prompt := testutil.NewPrompter(t, MenuViewCharacter, MenuOptions, MenuExit).WithInputs("Quincy")
	s, store := newSession(t, prompt)

	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	require.NoError(t, store.Save(p))

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, prompt.Pauses, 2)
	assert.Equal(t, p.String(), prompt.Pauses[0])
	assert.Contains(t, prompt.Pauses[1], "Save folder: "+store.Root())
}

func TestRun_CancelledContext(t *testing.T) {
	prompt := testutil.NewPrompter(t)
	s, _ := newSession(t, prompt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
	assert.Empty(t, prompt.Headers)
}

func TestTown_ExploreAndFlee(t *testing.T) {
	prompt := testutil.NewPrompter(t, TownExplore, int(combat.ActionFlee), ui.Quit)
	s, _ := newSession(t, prompt)

	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	p.SetTrigger(story.IntroTrigger, true)

	require.NoError(t, s.Town(context.Background(), p))
	assert.True(t, prompt.Paused(combat.DefaultFleeMessage))
	assert.Equal(t, p.Stats().MaxHealth(), p.Health(), "fleeing costs nothing")
	assert.Contains(t, prompt.Headers[1], "Rabbit HP: 32")
}

func TestTown_TooWeakToExplore(t *testing.T) {
	prompt := testutil.NewPrompter(t, TownExplore, ui.Quit)
	s, _ := newSession(t, prompt)

	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	p.SetHealth(0)

	require.NoError(t, s.Town(context.Background(), p))
	assert.Equal(t, []string{TooWeakMessage}, prompt.Pauses)
}

func TestTown_ShopAndEquip(t *testing.T) {
	// Shop → Buy → Dagger → yes → back → leave shop → Equipment → yes → Dagger → no → leave town
	prompt := testutil.NewPrompter(t,
		TownShop, 0, 0, 0, ui.Quit, ui.Quit,
		TownEquipment, 0, 0, 1,
		ui.Quit)
	s, _ := newSession(t, prompt)

	p := model.NewPlayer("Quincy", model.NewStats(1, 1, 1))
	require.NoError(t, s.Town(context.Background(), p))

	eq, ok := p.Equipped()
	require.True(t, ok)
	assert.Equal(t, "Dagger", eq.Name())
	assert.Equal(t, int32(75), p.Money())
	assert.Equal(t, model.UnarmedName, p.ItemNames())
	assert.Contains(t, prompt.LastHeader(), "Weapon: Dagger")
}

func TestRun_NewGameKeepsExistingCharacter(t *testing.T) {
	var choices []int
	choices = append(choices, MenuNewGame)
	choices = append(choices, seq(5, 0)...)
	choices = append(choices, 1, MenuExit) // "no" to overwriting

	prompt := testutil.NewPrompter(t, choices...).WithInputs("Quincy")
	s, store := newSession(t, prompt)

	old := model.NewPlayer("Quincy", model.NewStats(2, 2, 2))
	old.SetTrigger(story.IntroTrigger, true)
	require.NoError(t, store.Save(old))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 0, prompt.Remaining())
	assert.Contains(t, prompt.Headers[len(prompt.Headers)-2], "A character named Quincy already exists")
	assert.True(t, prompt.Paused(KeptMessage))
	assert.False(t, prompt.Paused(CreatedMessage))

	p, err := store.Load("Quincy")
	require.NoError(t, err)
	assert.Equal(t, old.Stats(), p.Stats())
}

func TestRun_NewGameOverwritesOnConfirm(t *testing.T) {
	var choices []int
	choices = append(choices, MenuNewGame)
	choices = append(choices, seq(5, 0)...)
	choices = append(choices, 0)            // "yes" to overwriting
	choices = append(choices, seq(7, 0)...) // intro rabbit
	choices = append(choices, ui.Quit, MenuExit)

	prompt := testutil.NewPrompter(t, choices...).WithInputs("Quincy")
	s, store := newSession(t, prompt)
	require.NoError(t, store.Save(model.NewPlayer("Quincy", model.NewStats(2, 2, 2))))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 0, prompt.Remaining())
	assert.True(t, prompt.Paused(CreatedMessage))

	p, err := store.Load("Quincy")
	require.NoError(t, err)
	assert.Equal(t, model.NewStats(6, 1, 1), p.Stats())
}

func TestLoadPrompt_ListsSaves(t *testing.T) {
	prompt := testutil.NewPrompter(t, MenuViewCharacter, MenuViewCharacter, MenuExit).WithInputs("Nobody", "Bea")
	s, store := newSession(t, prompt)

	s2, _ := newSession(t, testutil.NewPrompter(t))
	assert.Equal(t, LoadPrompt+"\nNo saved characters.", s2.loadPrompt())

	for _, n := range []string{"Cid", "Bea"} {
		require.NoError(t, store.Save(model.NewPlayer(n, model.NewStats(1, 1, 1))))
	}

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, prompt.Prompts, 2)
	assert.Equal(t, LoadPrompt+"\nSaved characters: Bea, Cid", prompt.Prompts[0])
}
