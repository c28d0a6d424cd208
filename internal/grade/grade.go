// Package grade tracks graded assignments and their weighted averages.
package grade

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("finite", isFinite); err != nil {
		panic(fmt.Errorf("validate.RegisterValidation(finite) > %w", err))
	}
	return validate
}

func isFinite(fl validator.FieldLevel) bool {
	return finite(fl.Field().Float())
}

// Entry is one graded assignment. Entries are never mutated once added.
type Entry struct {
	ID         string  `yaml:"id"`
	Subject    string  `yaml:"subject"`
	Assignment string  `yaml:"assignment"`
	Score      float64 `yaml:"score"`
	Weight     float64 `yaml:"weight"`
}

// Input is what a user submits to create an Entry.
type Input struct {
	Subject    string  `validate:"required"`
	Assignment string  `validate:"required"`
	Score      float64 `validate:"finite,gte=0,lte=100"`
	Weight     float64 `validate:"finite,gt=0"`
}

// Book is the in-memory list of entries owned by one grade module instance.
type Book struct {
	entries []Entry
	newID   func() string
}

// NewBook copies the seed entries into a new Book.
func NewBook(entries []Entry) *Book {
	return &Book{
		entries: slices.Clone(entries),
		newID:   uuid.NewString,
	}
}

// Entries returns a copy of the entries in insertion order.
func (b *Book) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Add appends a new entry. Invalid input is refused without an error and
// leaves the book unchanged.
func (b *Book) Add(input Input) (Entry, bool) {
	if err := validate.Struct(input); err != nil {
		slog.Default().Debug("refused grade entry",
			slog.String("subject", input.Subject),
			slog.String("assignment", input.Assignment),
			slog.Any("error", err),
		)
		return Entry{}, false
	}

	entry := Entry{
		ID:         b.newID(),
		Subject:    input.Subject,
		Assignment: input.Assignment,
		Score:      input.Score,
		Weight:     input.Weight,
	}
	b.entries = append(b.entries, entry)
	return entry, true
}

// Delete removes the entry with id and reports whether it existed.
func (b *Book) Delete(id string) bool {
	before := len(b.entries)
	b.entries = slices.DeleteFunc(b.entries, func(entry Entry) bool {
		return entry.ID == id
	})
	return len(b.entries) != before
}

// Average is WeightedAverage over the book's entries.
func (b *Book) Average(subject string) float64 {
	return WeightedAverage(b.entries, subject)
}

// WeightedAverage returns sum(score*weight)/sum(weight) rounded to two
// decimals. An empty subject means every entry. With nothing to average it
// returns 0. Entries with a non-finite score or weight are skipped.
func WeightedAverage(entries []Entry, subject string) float64 {
	var selected []Entry
	var weighted, totalWeight, maxWeight float64
	for _, entry := range entries {
		if subject != "" && entry.Subject != subject {
			continue
		}
		if !finite(entry.Score) || !finite(entry.Weight) || entry.Weight <= 0 {
			continue
		}
		selected = append(selected, entry)
		weighted += entry.Score * entry.Weight
		totalWeight += entry.Weight
		maxWeight = max(maxWeight, entry.Weight)
	}
	if totalWeight <= 0 {
		return 0
	}
	if finite(weighted) && finite(totalWeight) {
		return Round2(weighted / totalWeight)
	}

	// The sums overflowed. Scaling every weight by the largest one keeps
	// them within [0, 1] without changing the ratio.
	weighted, totalWeight = 0, 0
	for _, entry := range selected {
		scaled := entry.Weight / maxWeight
		weighted += entry.Score * scaled
		totalWeight += scaled
	}
	return Round2(weighted / totalWeight)
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Round2 rounds half away from zero at the hundredths place.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// LetterGrade maps a score or an average onto A-F.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Subjects returns the distinct subjects in first-seen order.
func Subjects(entries []Entry) []string {
	seen := make(map[string]struct{})
	var subjects []string
	for _, entry := range entries {
		if _, ok := seen[entry.Subject]; ok {
			continue
		}
		seen[entry.Subject] = struct{}{}
		subjects = append(subjects, entry.Subject)
	}
	return subjects
}

type SubjectAverage struct {
	Subject string
	Average float64
	Letter  string
}

// Summary is the overall and per-subject view of a set of entries.
type Summary struct {
	Count    int
	Overall  float64
	Letter   string
	Subjects []SubjectAverage
}

func Summarize(entries []Entry) Summary {
	overall := WeightedAverage(entries, "")
	summary := Summary{
		Count:   len(entries),
		Overall: overall,
		Letter:  LetterGrade(overall),
	}
	for _, subject := range Subjects(entries) {
		average := WeightedAverage(entries, subject)
		summary.Subjects = append(summary.Subjects, SubjectAverage{
			Subject: subject,
			Average: average,
			Letter:  LetterGrade(average),
		})
	}
	return summary
}
