package cli

import (
	"math"
	"strconv"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studydash/internal/grade"
)

// letterColors mirrors the score colors of the grade table.
var letterColors = map[string]*color.Color{
	"A": color.New(color.FgGreen),
	"B": color.New(color.FgBlue),
	"C": color.New(color.FgYellow),
	"D": color.New(color.FgMagenta),
	"F": color.New(color.FgRed),
}

func colorScore(score float64) string {
	letter := grade.LetterGrade(score)
	return letterColors[letter].Sprintf("%6.2f %s", score, letter)
}

type gradesModule struct {
	moduleBase
	book *grade.Book
}

func newGradesModule(base moduleBase, entries []grade.Entry) *gradesModule {
	return &gradesModule{
		moduleBase: base,
		book:       grade.NewBook(entries),
	}
}

func (m *gradesModule) Section() Section {
	return SectionGrades
}

func (m *gradesModule) Help() []commandHelp {
	return []commandHelp{
		{usage: "add", summary: "add a graded assignment"},
		{usage: "delete <id>", summary: "remove an assignment"},
		{usage: "list", summary: "show every assignment"},
		{usage: "summary", summary: "show overall and per-subject averages"},
	}
}

func (m *gradesModule) Handle(command string, args []string) error {
	switch command {
	case "add":
		return m.add()
	case "delete", "rm":
		value, err := singleArg(args, "delete <id>")
		if err != nil {
			return err
		}
		id, err := resolveID(value, m.ids())
		if err != nil {
			return err
		}
		m.book.Delete(id)
		m.Render()
	case "list":
		m.renderEntries()
	case "summary":
		m.renderSummary()
	default:
		return errUnknownCommand
	}
	return nil
}

func (m *gradesModule) add() error {
	subject, err := m.prompt("Subject", "")
	if err != nil {
		return err
	}
	assignment, err := m.prompt("Assignment", "")
	if err != nil {
		return err
	}
	score, err := m.prompt("Score (0-100)", "")
	if err != nil {
		return err
	}
	weight, err := m.prompt("Weight (%)", "")
	if err != nil {
		return err
	}

	entry, ok := m.book.Add(grade.Input{
		Subject:    subject,
		Assignment: assignment,
		Score:      parseNumber(score),
		Weight:     parseNumber(weight),
	})
	if !ok {
		m.notice("Nothing added.")
		return nil
	}
	m.notice("Added %s.", shortID(entry.ID))
	m.Render()
	return nil
}

// parseNumber returns NaN for anything that is not a number, which the
// grade validation rejects.
func parseNumber(value string) float64 {
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return number
}

func (m *gradesModule) ids() []string {
	entries := m.book.Entries()
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

func (m *gradesModule) Render() {
	m.renderSummary()
	m.renderEntries()
}

func (m *gradesModule) renderSummary() {
	summary := grade.Summarize(m.book.Entries())
	m.printf("%s %s\n", m.bold.Sprint("Overall:"), colorScore(summary.Overall))
	for _, subject := range summary.Subjects {
		m.printf("  %-20s %s\n", subject.Subject, colorScore(subject.Average))
	}
}

func (m *gradesModule) renderEntries() {
	entries := m.book.Entries()
	if len(entries) == 0 {
		m.notice("No grades yet. Type add to record one.")
		return
	}
	m.printf("%s\n", m.bold.Sprintf("  %-8s  %-16s  %-20s  %8s  %6s", "ID", "Subject", "Assignment", "Score", "Weight"))
	for _, entry := range entries {
		m.printf("  %-8s  %-16s  %-20s  %s  %5g%%\n",
			shortID(entry.ID), entry.Subject, entry.Assignment, colorScore(entry.Score), entry.Weight)
	}
}

func (m *gradesModule) Close() error {
	return nil
}
