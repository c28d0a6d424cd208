package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Section string

const (
	SectionTimer   Section = "timer"
	SectionGrades  Section = "grades"
	SectionPlanner Section = "planner"
	SectionStudy   Section = "study"
)

// Sections is the navigation order.
var Sections = []Section{SectionTimer, SectionGrades, SectionPlanner, SectionStudy}

func ParseSection(value string) (Section, error) {
	for _, section := range Sections {
		if strings.EqualFold(value, string(section)) {
			return section, nil
		}
	}
	return "", fmt.Errorf("invalid section %q, valid values are %s", value, strings.Join(sectionNames(), ", "))
}

func (s Section) Title() string {
	switch s {
	case SectionTimer:
		return "Pomodoro Timer"
	case SectionGrades:
		return "Grade Calculator"
	case SectionPlanner:
		return "Study Planner"
	case SectionStudy:
		return "Study Resources"
	}
	return string(s)
}

func sectionNames() []string {
	names := make([]string, 0, len(Sections))
	for _, section := range Sections {
		names = append(names, string(section))
	}
	return names
}

var errUnknownCommand = errors.New("unknown command")

// usageError is printed to the user and does not end the session.
type usageError struct {
	message string
}

func (e *usageError) Error() string {
	return e.message
}

func usagef(format string, args ...any) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}

type commandHelp struct {
	usage   string
	summary string
}

// Module is one mounted dashboard section. Its state lives only while it
// is mounted; Close releases the timers and jobs it acquired.
type Module interface {
	Section() Section
	Handle(command string, args []string) error
	Render()
	Help() []commandHelp
	Close() error
}

// moduleBase holds the terminal shared by every module.
type moduleBase struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	faint        *color.Color
	errorColor   *color.Color
}

func (m moduleBase) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.stdoutWriter, format, args...)
}

func (m moduleBase) notice(format string, args ...any) {
	_, _ = m.faint.Fprintf(m.stdoutWriter, format+"\n", args...)
}

// prompt asks for one line. An empty answer returns fallback.
func (m moduleBase) prompt(label string, fallback string) (string, error) {
	if fallback != "" {
		_, _ = m.bold.Fprintf(m.stdoutWriter, "%s [%s]: ", label, fallback)
	} else {
		_, _ = m.bold.Fprintf(m.stdoutWriter, "%s: ", label)
	}
	line, err := m.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		if line == "" {
			return "", errEnd
		}
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// shortID is how IDs are displayed. Any unique prefix resolves back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID finds the one id equal to or starting with prefix.
func resolveID(prefix string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", usagef("no item with id %q", prefix)
	case 1:
		return matches[0], nil
	}
	return "", usagef("id %q is ambiguous, type more characters", prefix)
}

// singleArg returns the only argument or a usage error.
func singleArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", usagef("usage: %s", usage)
	}
	return args[0], nil
}
