package registry

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial state of a Registry.
type Seed struct {
	Repositories []Repository `yaml:"repositories"`
	Workflows    []Workflow   `yaml:"workflows"`
	Stats        Stats        `yaml:"stats"`
	Compliance   Compliance   `yaml:"compliance"`
	Connection   Connection   `yaml:"connection"`
}

func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed document from path, or the embedded one if path
// is empty.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed: %w", err)
	}

	return ParseSeed(b)
}

func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := s.validate(); err != nil {
		return Seed{}, err
	}

	return s, nil
}

func (s Seed) validate() error {
	seen := make(map[int]struct{}, len(s.Workflows))
	for _, w := range s.Workflows {
		if w.Id <= 0 {
			return fmt.Errorf("seed workflow %v: id must be positive", w.Name)
		}
		if _, ok := seen[w.Id]; ok {
			return fmt.Errorf("seed workflow %v: duplicate id %d", w.Name, w.Id)
		}
		seen[w.Id] = struct{}{}

		if !w.Status.Valid() {
			return fmt.Errorf("seed workflow %v: unknown status %q", w.Name, w.Status)
		}
	}
	return nil
}
