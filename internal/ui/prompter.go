// Package ui defines the player-facing choice contract used by the game
// state machines and its terminal implementation.
package ui

// Quit is returned by Choose when the player picks the quit affordance.
const Quit = -1

// Prompter: абстрактный интерфейс выбора для меню, боя и магазина.
// State machines depend only on this contract, not on a concrete input device.
type Prompter interface {
	// Choose shows header and the labeled options and returns a zero-based
	// index, or Quit when quit is allowed and chosen.
	Choose(header string, options []string, quit bool) int

	// Pause shows msg and waits for any key.
	Pause(msg string)

	// Input shows msg and returns a trimmed line of text.
	Input(msg string) string
}

// Clamp приводит индекс выбора к диапазону [0, n-1].
// Quit passes through unchanged when allowed; out-of-range selections are
// clamped instead of reported as errors.
func Clamp(selection, n int, quit bool) int {
	if quit && selection == Quit {
		return Quit
	}
	if n <= 0 {
		return 0
	}
	if selection < 0 {
		return 0
	}
	if selection > n-1 {
		return n - 1
	}
	return selection
}

// YesNo are the confirmation options used by shop and equipment menus.
var YesNo = []string{"yes", "no"}
