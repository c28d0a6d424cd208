// Package study holds the learning resources, notes and flashcards shown in
// the study section, and the search across them.
package study

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/at-ishikawa/studydash/internal/planner"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Resource struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

type Note struct {
	ID      string       `yaml:"id"`
	Title   string       `yaml:"title"`
	Content string       `yaml:"content"`
	Date    planner.Date `yaml:"date"`
}

type Flashcard struct {
	ID       string `yaml:"id"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type FlashcardInput struct {
	Question string `validate:"required"`
	Answer   string `validate:"required"`
}

// Results is what a search matched, per collection.
type Results struct {
	Resources  []Resource
	Notes      []Note
	Flashcards []Flashcard
}

func (r Results) Empty() bool {
	return len(r.Resources) == 0 && len(r.Notes) == 0 && len(r.Flashcards) == 0
}

// Library is owned by one study module instance and discarded with it.
type Library struct {
	resources  []Resource
	notes      []Note
	flashcards []Flashcard
	revealed   map[string]bool
	newID      func() string
}

func NewLibrary(resources []Resource, notes []Note, flashcards []Flashcard) *Library {
	return &Library{
		resources:  slices.Clone(resources),
		notes:      slices.Clone(notes),
		flashcards: slices.Clone(flashcards),
		revealed:   make(map[string]bool),
		newID:      uuid.NewString,
	}
}

func (l *Library) Resources() []Resource {
	return slices.Clone(l.resources)
}

func (l *Library) Notes() []Note {
	return slices.Clone(l.notes)
}

func (l *Library) Flashcards() []Flashcard {
	return slices.Clone(l.flashcards)
}

// Search matches query case-insensitively as a substring. An empty query
// matches everything.
func (l *Library) Search(query string) Results {
	needle := strings.ToLower(query)
	matches := func(fields ...string) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}

	var results Results
	for _, resource := range l.resources {
		if matches(resource.Title, resource.Description) {
			results.Resources = append(results.Resources, resource)
		}
	}
	for _, note := range l.notes {
		if matches(note.Title, note.Content) {
			results.Notes = append(results.Notes, note)
		}
	}
	for _, card := range l.flashcards {
		if matches(card.Question, card.Answer) {
			results.Flashcards = append(results.Flashcards, card)
		}
	}
	return results
}

// AddFlashcard appends a card. A card without a question or an answer is
// refused and the deck is unchanged.
func (l *Library) AddFlashcard(input FlashcardInput) (Flashcard, bool) {
	if err := validate.Struct(input); err != nil {
		slog.Default().Debug("refused flashcard",
			slog.String("question", input.Question),
			slog.Any("error", err),
		)
		return Flashcard{}, false
	}
	card := Flashcard{
		ID:       l.newID(),
		Question: input.Question,
		Answer:   input.Answer,
	}
	l.flashcards = append(l.flashcards, card)
	return card, true
}

// ToggleAnswer flips whether the answer of one card is shown and returns
// the new state. Unknown ids are ignored.
func (l *Library) ToggleAnswer(id string) (bool, bool) {
	if !slices.ContainsFunc(l.flashcards, func(card Flashcard) bool { return card.ID == id }) {
		return false, false
	}
	l.revealed[id] = !l.revealed[id]
	return l.revealed[id], true
}

func (l *Library) Revealed(id string) bool {
	return l.revealed[id]
}
