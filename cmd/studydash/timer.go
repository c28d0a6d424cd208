package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studydash/internal/timer"
)

type ModeFlag string

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	mode, err := timer.ParseMode(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, "work", "short", "long")
	}
	*m = ModeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
)

func newTimerCommand() *cobra.Command {
	timerCommand := &cobra.Command{
		Use:   "timer",
		Short: "Pomodoro timer commands",
	}

	timerCommand.AddCommand(newTimerRunCommand())

	return timerCommand
}

func newTimerRunCommand() *cobra.Command {
	modeFlag := ModeFlag(timer.ModeWork)
	command := &cobra.Command{
		Use:   "run",
		Short: "Run one countdown in the foreground until it finishes or is interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			keeper := timer.New(cfg.Timer.Settings(), timer.Config{
				TickInterval: cfg.Timer.TickInterval,
			})
			defer keeper.Close()

			return runCountdown(ctx, cmd.OutOrStdout(), keeper, timer.Mode(modeFlag))
		},
	}
	command.Flags().Var(&modeFlag, "mode", "Countdown mode. Options: work, short, long")

	return command
}

// runCountdown prints every tick of one countdown of mode. It returns when
// the countdown expires or ctx is done.
func runCountdown(ctx context.Context, out io.Writer, keeper *timer.Timer, mode timer.Mode) error {
	events := keeper.Subscribe(64)
	keeper.SwitchMode(mode)
	keeper.Start()

	state := keeper.State()
	if _, err := fmt.Fprintf(out, "%s %s\n", mode.Label(), timer.FormatRemaining(state.RemainingSeconds)); err != nil {
		return fmt.Errorf("fmt.Fprintf() > %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			keeper.Pause()
			_, _ = fmt.Fprintf(out, "Stopped at %s\n", timer.FormatRemaining(keeper.State().RemainingSeconds))
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch event.Type {
			case timer.EventTick:
				_, _ = fmt.Fprintf(out, "%s %s\n", mode.Label(), timer.FormatRemaining(event.State.RemainingSeconds))
				// The expired event is dropped when a slow writer lets the buffer fill.
				if !keeper.State().Expired() {
					continue
				}
				fallthrough
			case timer.EventExpired:
				_, _ = fmt.Fprintf(out, "%s finished!\n", mode.Label())
				return nil
			}
		}
	}
}
