package cli

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studydash/internal/timer"
)

type timerModule struct {
	moduleBase
	timer  *timer.Timer
	events <-chan timer.Event
	done   chan struct{}
	active *color.Color
}

func newTimerModule(base moduleBase, settings timer.Settings, config timer.Config) *timerModule {
	keeper := timer.New(settings, config)
	m := &timerModule{
		moduleBase: base,
		timer:      keeper,
		events:     keeper.Subscribe(16),
		done:       make(chan struct{}),
		active:     color.New(color.FgGreen, color.Bold),
	}
	go m.watch()
	return m
}

// watch announces expiries until the timer is closed.
func (m *timerModule) watch() {
	defer close(m.done)
	for event := range m.events {
		if event.Type != timer.EventExpired {
			continue
		}
		_, _ = m.active.Fprintf(m.stdoutWriter, "\n%s finished! Pick the next mode and start again.\n", event.State.Mode.Label())
	}
}

func (m *timerModule) Section() Section {
	return SectionTimer
}

func (m *timerModule) Help() []commandHelp {
	return []commandHelp{
		{usage: "mode <work|short|long>", summary: "switch mode and reset the countdown"},
		{usage: "start", summary: "start the countdown"},
		{usage: "pause", summary: "pause the countdown"},
		{usage: "toggle", summary: "start or pause"},
		{usage: "reset", summary: "restore the full duration of the mode"},
		{usage: "settings [work=N] [short=N] [long=N]", summary: "show or change durations in minutes"},
		{usage: "status", summary: "show the countdown"},
	}
}

func (m *timerModule) Handle(command string, args []string) error {
	switch command {
	case "mode":
		value, err := singleArg(args, "mode <work|short|long>")
		if err != nil {
			return err
		}
		mode, err := timer.ParseMode(value)
		if err != nil {
			return usagef("%v", err)
		}
		m.timer.SwitchMode(mode)
	case "start":
		m.timer.Start()
	case "pause", "stop":
		m.timer.Pause()
	case "toggle":
		m.timer.Toggle()
	case "reset":
		m.timer.Reset()
	case "settings":
		if len(args) > 0 {
			settings, err := parseSettingsArgs(m.timer.Settings(), args)
			if err != nil {
				return err
			}
			m.timer.UpdateSettings(settings)
		}
		m.renderSettings()
		return nil
	case "status":
	default:
		return errUnknownCommand
	}
	m.Render()
	return nil
}

func (m *timerModule) Render() {
	state := m.timer.State()

	var tabs []string
	for _, mode := range timer.AllModes {
		if mode == state.Mode {
			tabs = append(tabs, m.active.Sprintf("[%s]", mode.Label()))
			continue
		}
		tabs = append(tabs, " "+mode.Label()+" ")
	}
	m.printf("%s\n", strings.Join(tabs, " "))

	status := "paused"
	if state.Running {
		status = "running"
	} else if state.Expired() {
		status = "finished"
	}
	m.printf("  %s  %s\n", m.bold.Sprint(timer.FormatRemaining(state.RemainingSeconds)), status)
}

func (m *timerModule) renderSettings() {
	settings := m.timer.Settings()
	m.printf("  %-12s %2d min (%d-%d)\n", timer.ModeWork.Label(), settings.WorkMinutes, timer.WorkRange.Min, timer.WorkRange.Max)
	m.printf("  %-12s %2d min (%d-%d)\n", timer.ModeShortBreak.Label(), settings.ShortBreakMinutes, timer.ShortBreakRange.Min, timer.ShortBreakRange.Max)
	m.printf("  %-12s %2d min (%d-%d)\n", timer.ModeLongBreak.Label(), settings.LongBreakMinutes, timer.LongBreakRange.Min, timer.LongBreakRange.Max)
}

func (m *timerModule) Close() error {
	m.timer.Close()
	<-m.done
	return nil
}

// parseSettingsArgs applies key=minutes pairs on top of current.
func parseSettingsArgs(current timer.Settings, args []string) (timer.Settings, error) {
	updated := current
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return current, usagef("usage: settings [work=N] [short=N] [long=N]")
		}
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return current, usagef("%s must be a whole number of minutes", key)
		}
		mode, err := timer.ParseMode(key)
		if err != nil {
			return current, usagef("%v", err)
		}
		switch mode {
		case timer.ModeWork:
			updated.WorkMinutes = minutes
		case timer.ModeShortBreak:
			updated.ShortBreakMinutes = minutes
		case timer.ModeLongBreak:
			updated.LongBreakMinutes = minutes
		}
	}
	return updated, nil
}
