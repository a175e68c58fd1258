package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI: терминальная реализация Prompter на bubbletea.
// Every prompt runs its own short-lived tea.Program; the calling state
// machine blocks until the player answers.
type TUI struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   []tea.ProgramOption
}

var _ Prompter = (*TUI)(nil)

// NewTUI creates a terminal prompter. Ctrl+C cancels the returned TUI's
// context; after that every prompt returns immediately.
func NewTUI(ctx context.Context, opts ...tea.ProgramOption) *TUI {
	ctx, cancel := context.WithCancel(ctx)
	return &TUI{
		ctx:    ctx,
		cancel: cancel,
		opts:   append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...),
	}
}

// Context is cancelled when the player interrupts the game.
func (t *TUI) Context() context.Context {
	return t.ctx
}

// Choose implements Prompter.
func (t *TUI) Choose(header string, options []string, quit bool) int {
	m, ok := t.run(newChooser(header, options, quit)).(chooser)
	if !ok || m.interrupted {
		if quit {
			return Quit
		}
		return 0
	}
	return m.Selection()
}

// Pause implements Prompter.
func (t *TUI) Pause(msg string) {
	t.run(pause{msg: msg})
}

// Input implements Prompter.
func (t *TUI) Input(msg string) string {
	m, ok := t.run(newLineInput(msg)).(lineInput)
	if !ok || m.interrupted {
		return ""
	}
	return strings.TrimSpace(m.input.Value())
}

func (t *TUI) run(m tea.Model) tea.Model {
	if t.ctx.Err() != nil {
		return nil
	}
	final, err := tea.NewProgram(m, t.opts...).Run()
	if err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("prompt failed", "error", err)
		}
		t.cancel()
		return nil
	}
	if in, ok := final.(interruptible); ok && in.wasInterrupted() {
		slog.Info("interrupted by player")
		t.cancel()
	}
	return final
}

type interruptible interface {
	wasInterrupted() bool
}

// chooser: меню с курсором: стрелки, цифры, Enter, Q.
type chooser struct {
	header      string
	options     []string
	quit        bool
	selection   int
	done        bool
	interrupted bool
}

func newChooser(header string, options []string, quit bool) chooser {
	return chooser{header: header, options: options, quit: quit}
}

// Selection returns the chosen index, or Quit.
func (m chooser) Selection() int {
	return Clamp(m.selection, len(m.options), m.quit)
}

func (m chooser) wasInterrupted() bool { return m.interrupted }

func (m chooser) Init() tea.Cmd { return nil }

func (m chooser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "ctrl+c":
		m.interrupted = true
		return m, tea.Quit
	case "up", "k":
		m.selection--
	case "down", "j":
		m.selection++
	case "enter":
		m.done = true
		return m, tea.Quit
	case "q", "Q":
		if m.quit {
			m.selection = Quit
			m.done = true
			return m, tea.Quit
		}
	default:
		// Digits jump to an option (1-based, 0 means the tenth); Enter confirms.
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			d := int(s[0] - '0')
			if d == 0 {
				d = 10
			}
			m.selection = d - 1
		}
	}

	m.selection = Clamp(m.selection, len(m.options), false)
	return m, nil
}

func (m chooser) View() string {
	if m.done || m.interrupted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.header)
	sb.WriteString("\n")
	if m.quit {
		sb.WriteString("Type Q to quit.\n")
	}
	for i, o := range m.options {
		if i == m.selection {
			fmt.Fprintf(&sb, "%d: %s <-\n", i+1, o)
		} else {
			fmt.Fprintf(&sb, "%d: %s\n", i+1, o)
		}
	}
	return sb.String()
}

// pause waits for any key.
type pause struct {
	msg         string
	done        bool
	interrupted bool
}

func (m pause) wasInterrupted() bool { return m.interrupted }

func (m pause) Init() tea.Cmd { return nil }

func (m pause) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.Type == tea.KeyCtrlC {
			m.interrupted = true
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pause) View() string {
	if m.done {
		return ""
	}
	return m.msg + "\n"
}

// lineInput reads one line of text.
type lineInput struct {
	msg         string
	input       textinput.Model
	done        bool
	interrupted bool
}

func newLineInput(msg string) lineInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()
	return lineInput{msg: msg, input: ti}
}

func (m lineInput) wasInterrupted() bool { return m.interrupted }

func (m lineInput) Init() tea.Cmd { return textinput.Blink }

func (m lineInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineInput) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return m.msg + "\n" + m.input.View() + "\n"
}
