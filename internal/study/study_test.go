package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleLibrary() *Library {
	return NewLibrary(
		[]Resource{
			{ID: "1", Title: "Introduction to Calculus", Type: "PDF", Description: "Comprehensive guide to calculus fundamentals", Link: "#"},
			{ID: "2", Title: "Chemistry Lab Techniques", Type: "Video", Description: "Visual demonstrations of common lab procedures", Link: "#"},
			{ID: "3", Title: "World History Timeline", Type: "Interactive", Description: "Interactive timeline of major historical events", Link: "#"},
		},
		[]Note{
			{ID: "1", Title: "Biology Chapter 5 Notes", Content: "Cell structure and function: The cell membrane is a phospholipid bilayer..."},
			{ID: "2", Title: "Physics Formulas", Content: "F = ma (Force = mass × acceleration)"},
		},
		[]Flashcard{
			{ID: "1", Question: "What is the Pythagorean theorem?", Answer: "a² + b² = c²"},
			{ID: "2", Question: "What is photosynthesis?", Answer: "The process by which plants convert light energy into chemical energy"},
		},
	)
}

func TestLibrary_Search(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantResources []string
		wantNotes     []string
		wantCards     []string
	}{
		{
			name:          "empty query matches everything",
			query:         "",
			wantResources: []string{"1", "2", "3"},
			wantNotes:     []string{"1", "2"},
			wantCards:     []string{"1", "2"},
		},
		{
			name:          "case insensitive title match",
			query:         "CALCULUS",
			wantResources: []string{"1"},
		},
		{
			name:          "matches description",
			query:         "lab procedures",
			wantResources: []string{"2"},
		},
		{
			name:      "matches note content",
			query:     "membrane",
			wantNotes: []string{"1"},
		},
		{
			name:      "matches flashcard answer",
			query:     "light energy",
			wantCards: []string{"2"},
		},
		{
			name:          "matches across collections",
			query:         "chem",
			wantResources: []string{"2"},
			wantCards:     []string{"2"},
		},
		{
			name:  "no match",
			query: "astronomy",
		},
	}

	ids := func(n int, id func(int) string) []string {
		var out []string
		for i := 0; i < n; i++ {
			out = append(out, id(i))
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newSampleLibrary().Search(tt.query)

			assert.Equal(t, tt.wantResources, ids(len(got.Resources), func(i int) string { return got.Resources[i].ID }))
			assert.Equal(t, tt.wantNotes, ids(len(got.Notes), func(i int) string { return got.Notes[i].ID }))
			assert.Equal(t, tt.wantCards, ids(len(got.Flashcards), func(i int) string { return got.Flashcards[i].ID }))
			assert.Equal(t, tt.wantResources == nil && tt.wantNotes == nil && tt.wantCards == nil, got.Empty())
		})
	}
}

func TestLibrary_AddFlashcard(t *testing.T) {
	tests := []struct {
		name   string
		input  FlashcardInput
		wantOK bool
	}{
		{name: "valid", input: FlashcardInput{Question: "What is 2+2?", Answer: "4"}, wantOK: true},
		{name: "missing question", input: FlashcardInput{Answer: "4"}},
		{name: "missing answer", input: FlashcardInput{Question: "What is 2+2?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			library := newSampleLibrary()
			library.newID = func() string { return "new-id" }

			got, ok := library.AddFlashcard(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Len(t, library.Flashcards(), 2)
				return
			}
			assert.Equal(t, Flashcard{ID: "new-id", Question: tt.input.Question, Answer: tt.input.Answer}, got)
			require.Len(t, library.Flashcards(), 3)
			assert.False(t, library.Revealed("new-id"))
		})
	}
}

func TestLibrary_ToggleAnswerIsPerCard(t *testing.T) {
	library := newSampleLibrary()

	revealed, ok := library.ToggleAnswer("1")
	require.True(t, ok)
	assert.True(t, revealed)
	assert.True(t, library.Revealed("1"))
	assert.False(t, library.Revealed("2"))

	library.Search("photosynthesis")
	assert.True(t, library.Revealed("1"), "search does not reset reveal state")

	revealed, ok = library.ToggleAnswer("1")
	require.True(t, ok)
	assert.False(t, revealed)

	_, ok = library.ToggleAnswer("missing")
	assert.False(t, ok)
	assert.False(t, library.Revealed("missing"))
}
