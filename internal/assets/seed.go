package assets

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studydash/internal/grade"
	"github.com/at-ishikawa/studydash/internal/planner"
	"github.com/at-ishikawa/studydash/internal/study"
)

//go:embed templates/seed.yml
var embeddedSeed []byte

// Seed is the initial data every freshly mounted module starts from.
// It is only read; nothing is written back.
type Seed struct {
	Grades     []grade.Entry     `yaml:"grades"`
	Tasks      []planner.Task    `yaml:"tasks"`
	Resources  []study.Resource  `yaml:"resources"`
	Notes      []study.Note      `yaml:"notes"`
	Flashcards []study.Flashcard `yaml:"flashcards"`
}

// LoadSeed reads the seed at path, or the embedded sample data when path is empty.
func LoadSeed(path string) (Seed, error) {
	data := embeddedSeed
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}
		data = content
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	return seed, nil
}
