// Package testutil provides shared test helpers for creating config and seed fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studydash/internal/assets"
	"github.com/at-ishikawa/studydash/internal/grade"
	"github.com/at-ishikawa/studydash/internal/planner"
	"github.com/at-ishikawa/studydash/internal/study"
)

// SetupTestConfig creates a config file that points the seed and the report
// directory into tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...SeedOption) string {
	t.Helper()

	reportDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(reportDir, 0755))
	seedPath := CreateSeedFile(t, tmpDir, opts...)

	configContent := fmt.Sprintf(`timer:
  tick_interval: 1h
seed:
  file: %s
outputs:
  report_directory: %s
`,
		seedPath,
		reportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SeedOption replaces one collection of the default seed fixture.
type SeedOption func(*assets.Seed)

func WithGrades(entries ...grade.Entry) SeedOption {
	return func(seed *assets.Seed) {
		seed.Grades = entries
	}
}

func WithTasks(tasks ...planner.Task) SeedOption {
	return func(seed *assets.Seed) {
		seed.Tasks = tasks
	}
}

func WithFlashcards(cards ...study.Flashcard) SeedOption {
	return func(seed *assets.Seed) {
		seed.Flashcards = cards
	}
}

// DefaultSeed is a small fixture with one item per collection.
func DefaultSeed() assets.Seed {
	return assets.Seed{
		Grades: []grade.Entry{
			{ID: "g1", Subject: "Mathematics", Assignment: "Quiz", Score: 80, Weight: 10},
		},
		Tasks: []planner.Task{
			{
				ID:       "t1",
				Title:    "Read chapter 1",
				DueDate:  planner.Date{Year: 2025, Month: time.January, Day: 1},
				Priority: planner.PriorityHigh,
			},
		},
		Resources: []study.Resource{
			{ID: "r1", Title: "Algebra Basics", Type: "PDF", Description: "Linear equations", Link: "#"},
		},
		Notes: []study.Note{
			{ID: "n1", Title: "Cells", Content: "Mitochondria", Date: planner.Date{Year: 2025, Month: time.January, Day: 2}},
		},
		Flashcards: []study.Flashcard{
			{ID: "c1", Question: "2+2?", Answer: "4"},
		},
	}
}

// CreateSeedFile writes DefaultSeed, adjusted by opts, to dir/seed.yml.
func CreateSeedFile(t *testing.T, dir string, opts ...SeedOption) string {
	t.Helper()

	seed := DefaultSeed()
	for _, opt := range opts {
		opt(&seed)
	}

	content, err := yaml.Marshal(seed)
	require.NoError(t, err)
	path := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}
