package timer

import "fmt"

// Mode is one of the three countdown categories.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// AllModes lists the modes in the order they are offered to users.
var AllModes = []Mode{ModeWork, ModeShortBreak, ModeLongBreak}

// ParseMode accepts the canonical names and the short aliases used on the command line.
func ParseMode(value string) (Mode, error) {
	switch value {
	case string(ModeWork), "pomodoro", "focus":
		return ModeWork, nil
	case string(ModeShortBreak), "short", "shortBreak":
		return ModeShortBreak, nil
	case string(ModeLongBreak), "long", "longBreak":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("invalid mode %q, valid values are work, short, long", value)
}

func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Pomodoro"
	}
}

// Range is an inclusive bound in whole minutes.
type Range struct {
	Min int
	Max int
}

func (r Range) clamp(value int) int {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}

var (
	WorkRange       = Range{Min: 5, Max: 60}
	ShortBreakRange = Range{Min: 1, Max: 15}
	LongBreakRange  = Range{Min: 5, Max: 30}
)

// Settings holds the duration in minutes of every mode.
type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
}

// DefaultSettings returns the classic 25/5/15 split.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
	}
}

// Clamp constrains every duration to its range. Out-of-range values are never an error.
func (settings Settings) Clamp() Settings {
	return Settings{
		WorkMinutes:       WorkRange.clamp(settings.WorkMinutes),
		ShortBreakMinutes: ShortBreakRange.clamp(settings.ShortBreakMinutes),
		LongBreakMinutes:  LongBreakRange.clamp(settings.LongBreakMinutes),
	}
}

// Minutes returns the configured duration of mode.
func (settings Settings) Minutes(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakMinutes
	case ModeLongBreak:
		return settings.LongBreakMinutes
	default:
		return settings.WorkMinutes
	}
}

// Seconds returns the full countdown length of mode.
func (settings Settings) Seconds(mode Mode) int {
	return settings.Minutes(mode) * 60
}
