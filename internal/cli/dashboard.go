package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studydash/internal/assets"
	"github.com/at-ishikawa/studydash/internal/timer"
)

var errEnd = errors.New("end")

// DashboardOptions is what every mounted module is built from.
type DashboardOptions struct {
	Seed          assets.Seed
	TimerSettings timer.Settings
	TimerConfig   timer.Config
	// ReminderTime is HH:MM. Empty disables the planner reminder.
	ReminderTime     string
	ReminderLocation *time.Location
}

// Dashboard is the navigation shell. It mounts exactly one module at a time
// and builds a fresh one from the seed on every switch.
type Dashboard struct {
	options      DashboardOptions
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	faint        *color.Color
	errorColor   *color.Color

	active Module
}

func NewDashboard(options DashboardOptions) *Dashboard {
	return newDashboard(options, os.Stdin, os.Stdout)
}

func newDashboard(options DashboardOptions, stdin io.Reader, stdout io.Writer) *Dashboard {
	return &Dashboard{
		options:      options,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: &lockedWriter{writer: stdout},
		bold:         color.New(color.Bold),
		faint:        color.New(color.Faint),
		errorColor:   color.New(color.FgRed),
	}
}

// Active returns the section currently mounted, or "" before Open.
func (d *Dashboard) Active() Section {
	if d.active == nil {
		return ""
	}
	return d.active.Section()
}

// Open mounts section and renders it.
func (d *Dashboard) Open(section Section) error {
	if d.active != nil {
		if err := d.active.Close(); err != nil {
			return fmt.Errorf("close %s > %w", d.active.Section(), err)
		}
		d.active = nil
	}

	module, err := d.mount(section)
	if err != nil {
		return fmt.Errorf("mount(%s) > %w", section, err)
	}
	d.active = module
	_, _ = d.bold.Fprintf(d.stdoutWriter, "\n== %s ==\n", section.Title())
	module.Render()
	return nil
}

// Close releases the active module.
func (d *Dashboard) Close() error {
	if d.active == nil {
		return nil
	}
	err := d.active.Close()
	d.active = nil
	return err
}

// Exec mounts section without a session, runs one module command and
// unmounts it again.
func Exec(options DashboardOptions, stdout io.Writer, section Section, command string, args []string) error {
	d := newDashboard(options, strings.NewReader(""), stdout)
	module, err := d.mount(section)
	if err != nil {
		return fmt.Errorf("mount(%s) > %w", section, err)
	}
	d.active = module
	defer func() {
		_ = d.Close()
	}()

	if err := module.Handle(command, args); err != nil {
		if errors.Is(err, errUnknownCommand) {
			return fmt.Errorf("unknown %s command %q", section, command)
		}
		return err
	}
	return nil
}

func (d *Dashboard) mount(section Section) (Module, error) {
	base := moduleBase{
		stdinReader:  d.stdinReader,
		stdoutWriter: d.stdoutWriter,
		bold:         d.bold,
		faint:        d.faint,
		errorColor:   d.errorColor,
	}
	switch section {
	case SectionTimer:
		return newTimerModule(base, d.options.TimerSettings, d.options.TimerConfig), nil
	case SectionGrades:
		return newGradesModule(base, d.options.Seed.Grades), nil
	case SectionPlanner:
		return newPlannerModule(base, d.options.Seed.Tasks, d.options.ReminderTime, d.options.ReminderLocation)
	case SectionStudy:
		return newStudyModule(base, d.options.Seed), nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

// Session reads one command line and dispatches it.
func (d *Dashboard) Session(_ context.Context) error {
	_, _ = d.faint.Fprintf(d.stdoutWriter, "studydash[%s]> ", d.Active())
	line, err := d.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				_ = d.dispatch(line)
			}
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	return d.dispatch(line)
}

func (d *Dashboard) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit":
		return errEnd
	case "help":
		d.printHelp()
		return nil
	case "go", "open":
		if len(args) != 1 {
			d.printError("usage: go <%s>", strings.Join(sectionNames(), "|"))
			return nil
		}
		section, err := ParseSection(args[0])
		if err != nil {
			d.printError("%v", err)
			return nil
		}
		return d.Open(section)
	}

	if d.active == nil {
		d.printError("no section is open, use: go <section>")
		return nil
	}
	if err := d.active.Handle(command, args); err != nil {
		if errors.Is(err, errUnknownCommand) {
			d.printError("unknown command %q, type help for the list", command)
			return nil
		}
		var usage *usageError
		if errors.As(err, &usage) {
			d.printError("%s", usage.Error())
			return nil
		}
		return err
	}
	return nil
}

func (d *Dashboard) printHelp() {
	_, _ = d.bold.Fprintln(d.stdoutWriter, "Navigation")
	d.printCommands([]commandHelp{
		{usage: "go <" + strings.Join(sectionNames(), "|") + ">", summary: "open a section"},
		{usage: "help", summary: "show this help"},
		{usage: "quit", summary: "leave the dashboard"},
	})
	if d.active == nil {
		return
	}
	_, _ = d.bold.Fprintln(d.stdoutWriter, d.active.Section().Title())
	d.printCommands(d.active.Help())
}

func (d *Dashboard) printCommands(commands []commandHelp) {
	for _, command := range commands {
		_, _ = fmt.Fprintf(d.stdoutWriter, "  %-36s %s\n", command.usage, command.summary)
	}
}

func (d *Dashboard) printError(format string, args ...any) {
	_, _ = d.errorColor.Fprintf(d.stdoutWriter, format+"\n", args...)
}

//go:generate mockgen -source=dashboard.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run runs the dashboard session loop and writes its notices to the
// dashboard's own writer.
func (d *Dashboard) Run(ctx context.Context) error {
	return Run(ctx, d, d.stdoutWriter)
}

// Run repeats session until it ends or fails or ctx is interrupted.
func Run(ctx context.Context, session Session, stdout io.Writer) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	// Buffered so a session failing after an interrupt never blocks.
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(stdout, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// lockedWriter serializes writes from the session, timer events and reminders.
type lockedWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Write(p)
}
