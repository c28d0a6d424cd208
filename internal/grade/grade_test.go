package grade

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: "1", Subject: "Mathematics", Assignment: "Midterm Exam", Score: 85, Weight: 30},
		{ID: "2", Subject: "Science", Assignment: "Lab Report", Score: 92, Weight: 20},
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		subject string
		want    float64
	}{
		{
			name:    "no entries returns zero",
			entries: nil,
			want:    0,
		},
		{
			name:    "all entries",
			entries: sampleEntries(),
			want:    87.8,
		},
		{
			name:    "subject filter",
			entries: sampleEntries(),
			subject: "Science",
			want:    92,
		},
		{
			name:    "unknown subject returns zero",
			entries: sampleEntries(),
			subject: "History",
			want:    0,
		},
		{
			name: "rounds half away from zero",
			entries: []Entry{
				{Subject: "Art", Score: 80.125, Weight: 1},
			},
			want: 80.13,
		},
		{
			name: "rounds to two decimals",
			entries: []Entry{
				{Subject: "Art", Score: 90, Weight: 1},
				{Subject: "Art", Score: 85, Weight: 2},
			},
			want: 86.67,
		},
		{
			name: "weights whose sum overflows",
			entries: []Entry{
				{Subject: "Art", Score: 80, Weight: 1e308},
				{Subject: "Art", Score: 90, Weight: 1e308},
			},
			want: 85,
		},
		{
			name: "huge weight dominates",
			entries: []Entry{
				{Subject: "Art", Score: 70, Weight: 1},
				{Subject: "Art", Score: 90, Weight: math.MaxFloat64},
				{Subject: "Art", Score: 90, Weight: math.MaxFloat64},
			},
			want: 90,
		},
		{
			name: "non-finite seeded weights are skipped",
			entries: []Entry{
				{Subject: "Art", Score: 60, Weight: math.Inf(1)},
				{Subject: "Art", Score: 80, Weight: math.NaN()},
				{Subject: "Art", Score: 90, Weight: 2},
			},
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeightedAverage(tt.entries, tt.subject))
		})
	}
}

func TestWeightedAverage_MatchesFormula(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		var entries []Entry
		var weighted, total float64
		for j := 0; j < 1+random.Intn(8); j++ {
			score := float64(random.Intn(101))
			weight := float64(1 + random.Intn(50))
			entries = append(entries, Entry{Subject: "S", Score: score, Weight: weight})
			weighted += score * weight
			total += weight
		}
		assert.Equal(t, math.Round(weighted/total*100)/100, WeightedAverage(entries, ""))
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 100, want: "A"},
		{score: 90, want: "A"},
		{score: 89.99, want: "B"},
		{score: 80, want: "B"},
		{score: 70, want: "C"},
		{score: 60, want: "D"},
		{score: 59.5, want: "F"},
		{score: 0, want: "F"},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.score, 'f', -1, 64), func(t *testing.T) {
			assert.Equal(t, tt.want, LetterGrade(tt.score))
		})
	}
}

func TestBook_Add(t *testing.T) {
	tests := []struct {
		name   string
		input  Input
		wantOK bool
	}{
		{
			name:   "valid entry",
			input:  Input{Subject: "History", Assignment: "Essay", Score: 78, Weight: 10},
			wantOK: true,
		},
		{
			name:   "boundary scores are valid",
			input:  Input{Subject: "History", Assignment: "Quiz", Score: 100, Weight: 0.5},
			wantOK: true,
		},
		{
			name:  "negative score",
			input: Input{Subject: "History", Assignment: "Essay", Score: -1, Weight: 10},
		},
		{
			name:  "score above 100",
			input: Input{Subject: "History", Assignment: "Essay", Score: 101, Weight: 10},
		},
		{
			name:  "zero weight",
			input: Input{Subject: "History", Assignment: "Essay", Score: 50, Weight: 0},
		},
		{
			name:  "empty subject",
			input: Input{Subject: "", Assignment: "Essay", Score: 50, Weight: 10},
		},
		{
			name:  "empty assignment",
			input: Input{Subject: "History", Assignment: "", Score: 50, Weight: 10},
		},
		{
			name:  "not a number",
			input: Input{Subject: "History", Assignment: "Essay", Score: math.NaN(), Weight: 10},
		},
		{
			name:  "infinite weight",
			input: Input{Subject: "History", Assignment: "Essay", Score: 90, Weight: math.Inf(1)},
		},
		{
			name:  "weight not a number",
			input: Input{Subject: "History", Assignment: "Essay", Score: 90, Weight: math.NaN()},
		},
		{
			name:  "infinite score",
			input: Input{Subject: "History", Assignment: "Essay", Score: math.Inf(1), Weight: 10},
		},
		{
			name:   "largest finite weight",
			input:  Input{Subject: "History", Assignment: "Essay", Score: 90, Weight: math.MaxFloat64},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewBook(sampleEntries())
			book.newID = func() string { return "new-id" }

			got, ok := book.Add(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, sampleEntries(), book.Entries())
				return
			}

			require.Len(t, book.Entries(), 3)
			assert.Equal(t, Entry{
				ID:         "new-id",
				Subject:    tt.input.Subject,
				Assignment: tt.input.Assignment,
				Score:      tt.input.Score,
				Weight:     tt.input.Weight,
			}, got)
			assert.Equal(t, got, book.Entries()[2])
		})
	}
}

func TestBook_AddGeneratesUniqueIDs(t *testing.T) {
	book := NewBook(nil)
	first, ok := book.Add(Input{Subject: "A", Assignment: "1", Score: 1, Weight: 1})
	require.True(t, ok)
	second, ok := book.Add(Input{Subject: "A", Assignment: "2", Score: 1, Weight: 1})
	require.True(t, ok)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBook_Delete(t *testing.T) {
	book := NewBook(sampleEntries())

	assert.False(t, book.Delete("missing"))
	assert.Len(t, book.Entries(), 2)

	assert.True(t, book.Delete("1"))
	assert.Equal(t, []Entry{sampleEntries()[1]}, book.Entries())
	assert.Equal(t, 92.0, book.Average(""))
}

func TestNewBook_DoesNotAliasSeed(t *testing.T) {
	seed := sampleEntries()
	book := NewBook(seed)
	book.Delete("1")

	assert.Len(t, seed, 2)
	assert.Equal(t, "1", seed[0].ID)
}

func TestSummarize(t *testing.T) {
	entries := append(sampleEntries(), Entry{ID: "3", Subject: "Mathematics", Assignment: "Homework", Score: 55, Weight: 10})

	got := Summarize(entries)

	assert.Equal(t, Summary{
		Count:   3,
		Overall: 82.33,
		Letter:  "B",
		Subjects: []SubjectAverage{
			{Subject: "Mathematics", Average: 77.5, Letter: "C"},
			{Subject: "Science", Average: 92, Letter: "A"},
		},
	}, got)
}

func TestSubjects(t *testing.T) {
	entries := append(sampleEntries(), Entry{Subject: "Mathematics"})

	assert.ElementsMatch(t, []string{"Mathematics", "Science"}, Subjects(entries))
	assert.Empty(t, Subjects(nil))
}
