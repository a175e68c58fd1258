package testutil

import (
	"strings"
	"testing"

	"github.com/udisondev/quincy/internal/ui"
)

// Prompter: ui.Prompter с заранее записанными ответами.
// Every call is recorded; running out of scripted answers fails the test.
type Prompter struct {
	t       testing.TB
	choices []int
	inputs  []string

	// Headers are the headers passed to Choose, in call order.
	Headers []string
	// Options are the option lists passed to Choose, in call order.
	Options [][]string
	// Pauses are the messages passed to Pause, in call order.
	Pauses []string
	// Prompts are the messages passed to Input, in call order.
	Prompts []string
}

var _ ui.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter answering Choose with choices in order.
func NewPrompter(t testing.TB, choices ...int) *Prompter {
	return &Prompter{t: t, choices: choices}
}

// WithInputs queues answers for Input.
func (p *Prompter) WithInputs(inputs ...string) *Prompter {
	p.inputs = append(p.inputs, inputs...)
	return p
}

// Choose implements ui.Prompter.
func (p *Prompter) Choose(header string, options []string, quit bool) int {
	p.t.Helper()
	p.Headers = append(p.Headers, header)
	p.Options = append(p.Options, append([]string(nil), options...))
	if len(p.choices) == 0 {
		p.t.Fatalf("unexpected Choose (no scripted answers left):\n%s\noptions: %v", header, options)
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return ui.Clamp(c, len(options), quit)
}

// Pause implements ui.Prompter.
func (p *Prompter) Pause(msg string) {
	p.Pauses = append(p.Pauses, msg)
}

// Input implements ui.Prompter.
func (p *Prompter) Input(msg string) string {
	p.t.Helper()
	p.Prompts = append(p.Prompts, msg)
	if len(p.inputs) == 0 {
		p.t.Fatalf("unexpected Input (no scripted answers left): %s", msg)
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in
}

// Remaining returns the number of unused scripted choices.
func (p *Prompter) Remaining() int {
	return len(p.choices)
}

// Paused reports whether any Pause message contains substr.
func (p *Prompter) Paused(substr string) bool {
	for _, m := range p.Pauses {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// LastHeader returns the most recent Choose header.
func (p *Prompter) LastHeader() string {
	if len(p.Headers) == 0 {
		return ""
	}
	return p.Headers[len(p.Headers)-1]
}
