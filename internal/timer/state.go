package timer

import "fmt"

// State is a snapshot of the countdown. RemainingSeconds always stays
// within [0, Settings.Seconds(Mode)].
type State struct {
	Mode             Mode
	RemainingSeconds int
	Running          bool
}

// NewState returns the state of a freshly mounted timer.
func NewState(settings Settings) State {
	return State{
		Mode:             ModeWork,
		RemainingSeconds: settings.Seconds(ModeWork),
	}
}

// SwitchMode abandons the current countdown and loads the full duration of mode.
func (state State) SwitchMode(settings Settings, mode Mode) State {
	return State{
		Mode:             mode,
		RemainingSeconds: settings.Seconds(mode),
	}
}

// Toggle flips Running. Starting an expired countdown is allowed but
// settles straight back to stopped.
func (state State) Toggle() State {
	state.Running = !state.Running
	return state.settle()
}

// Reset reloads the full duration of the current mode and stops.
func (state State) Reset(settings Settings) State {
	return state.SwitchMode(settings, state.Mode)
}

// Tick consumes one second. It never goes below zero and stops the countdown on expiry.
func (state State) Tick() State {
	if !state.Running || state.RemainingSeconds <= 0 {
		return state.settle()
	}
	state.RemainingSeconds--
	return state.settle()
}

// ApplySettings reloads the remaining time only when the current mode's
// duration changed. Any settings edit interrupts the countdown.
func (state State) ApplySettings(previous, updated Settings) State {
	if previous.Minutes(state.Mode) != updated.Minutes(state.Mode) {
		state.RemainingSeconds = updated.Seconds(state.Mode)
	}
	state.Running = false
	return state
}

// Expired reports whether the countdown has reached zero.
func (state State) Expired() bool {
	return state.RemainingSeconds <= 0
}

// settle enforces the expiry rule: nothing runs at zero.
func (state State) settle() State {
	if state.RemainingSeconds <= 0 {
		state.RemainingSeconds = 0
		state.Running = false
	}
	return state
}

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
