package cli

import (
	"strings"

	"github.com/at-ishikawa/studydash/internal/assets"
	"github.com/at-ishikawa/studydash/internal/study"
)

type studyModule struct {
	moduleBase
	library *study.Library
	query   string
}

func newStudyModule(base moduleBase, seed assets.Seed) *studyModule {
	return &studyModule{
		moduleBase: base,
		library:    study.NewLibrary(seed.Resources, seed.Notes, seed.Flashcards),
	}
}

func (m *studyModule) Section() Section {
	return SectionStudy
}

func (m *studyModule) Help() []commandHelp {
	return []commandHelp{
		{usage: "search [query]", summary: "filter every tab, no query clears the filter"},
		{usage: "resources", summary: "show matching resources"},
		{usage: "notes", summary: "show matching notes"},
		{usage: "cards", summary: "show matching flashcards"},
		{usage: "reveal <id>", summary: "show or hide the answer of a flashcard"},
		{usage: "add", summary: "add a flashcard"},
	}
}

func (m *studyModule) Handle(command string, args []string) error {
	switch command {
	case "search":
		m.query = strings.Join(args, " ")
		m.Render()
	case "resources":
		m.renderResources(m.library.Search(m.query).Resources)
	case "notes":
		m.renderNotes(m.library.Search(m.query).Notes)
	case "cards", "flashcards":
		m.renderFlashcards(m.library.Search(m.query).Flashcards)
	case "reveal", "flip":
		value, err := singleArg(args, "reveal <id>")
		if err != nil {
			return err
		}
		cards := m.library.Flashcards()
		ids := make([]string, 0, len(cards))
		for _, card := range cards {
			ids = append(ids, card.ID)
		}
		id, err := resolveID(value, ids)
		if err != nil {
			return err
		}
		m.library.ToggleAnswer(id)
		m.renderFlashcards(m.library.Search(m.query).Flashcards)
	case "add":
		return m.add()
	default:
		return errUnknownCommand
	}
	return nil
}

func (m *studyModule) add() error {
	question, err := m.prompt("Question", "")
	if err != nil {
		return err
	}
	answer, err := m.prompt("Answer", "")
	if err != nil {
		return err
	}
	card, ok := m.library.AddFlashcard(study.FlashcardInput{Question: question, Answer: answer})
	if !ok {
		m.notice("Nothing added.")
		return nil
	}
	m.notice("Added %s.", shortID(card.ID))
	return nil
}

func (m *studyModule) Render() {
	results := m.library.Search(m.query)
	if m.query != "" {
		m.printf("Search: %s\n", m.bold.Sprint(m.query))
	}
	m.renderResources(results.Resources)
	m.renderNotes(results.Notes)
	m.renderFlashcards(results.Flashcards)
}

func (m *studyModule) renderResources(resources []study.Resource) {
	m.printf("%s\n", m.bold.Sprint("Resources"))
	if len(resources) == 0 {
		m.notice("  No resources found matching your search.")
		return
	}
	for _, resource := range resources {
		m.printf("  %-8s %s %s\n", shortID(resource.ID), resource.Title, m.faint.Sprintf("[%s]", resource.Type))
		m.printf("           %s\n", resource.Description)
		if resource.Link != "" && resource.Link != "#" {
			m.printf("           %s\n", resource.Link)
		}
	}
}

func (m *studyModule) renderNotes(notes []study.Note) {
	m.printf("%s\n", m.bold.Sprint("Notes"))
	if len(notes) == 0 {
		m.notice("  No notes found matching your search.")
		return
	}
	for _, note := range notes {
		m.printf("  %-8s %s %s\n", shortID(note.ID), note.Title, m.faint.Sprint(note.Date.Format(displayDateLayout)))
		for _, line := range strings.Split(note.Content, "\n") {
			m.printf("           %s\n", line)
		}
	}
}

func (m *studyModule) renderFlashcards(cards []study.Flashcard) {
	m.printf("%s\n", m.bold.Sprint("Flashcards"))
	if len(cards) == 0 {
		m.notice("  No flashcards found matching your search.")
		return
	}
	for _, card := range cards {
		m.printf("  %-8s Q: %s\n", shortID(card.ID), card.Question)
		if m.library.Revealed(card.ID) {
			m.printf("           A: %s\n", card.Answer)
		} else {
			m.notice("           (hidden, type reveal %s)", shortID(card.ID))
		}
	}
}

func (m *studyModule) Close() error {
	return nil
}
