// Package scenario holds the fixed mansion data: room layout, the clue lying in each room
// and the suspect every clue points to. The data ships embedded in the binary.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed mansion.yaml
var defaultData []byte

// Room is one node of the layout as written in the scenario file.
type Room struct {
	Name  string `yaml:"name"`
	Clue  string `yaml:"clue,omitempty"`
	Left  *Room  `yaml:"left,omitempty"`
	Right *Room  `yaml:"right,omitempty"`
}

// Implication ties a clue to the suspect it implicates.
type Implication struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

type Scenario struct {
	Title    string        `yaml:"title"`
	Layout   Room          `yaml:"layout"`
	Suspects []Implication `yaml:"suspects"`
}

// Load parses and validates scenario data.
func Load(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", s.Title, err)
	}
	return &s, nil
}

// Default returns the embedded mansion. It panics if the embedded file is broken,
// which can only happen through a bad edit of mansion.yaml.
func Default() *Scenario {
	s, err := Load(defaultData)
	if err != nil {
		panic(err)
	}
	return s
}

// Clues maps each room name to the clue lying there. Rooms without a clue are absent.
func (s *Scenario) Clues() map[string]string {
	out := make(map[string]string)
	s.Layout.walk(func(r *Room) {
		if r.Clue != "" {
			out[r.Name] = r.Clue
		}
	})
	return out
}

func (r *Room) walk(fn func(*Room)) {
	if r == nil {
		return
	}
	fn(r)
	r.Left.walk(fn)
	r.Right.walk(fn)
}

func (s *Scenario) validate() error {
	var errs []error

	implicated := make(map[string]bool, len(s.Suspects))
	for _, imp := range s.Suspects {
		if imp.Clue == "" || imp.Suspect == "" {
			errs = append(errs, fmt.Errorf("suspect entry needs both clue and suspect (got %q -> %q)", imp.Clue, imp.Suspect))
			continue
		}
		implicated[imp.Clue] = true
	}

	seen := make(map[string]bool)
	s.Layout.walk(func(r *Room) {
		switch {
		case r.Name == "":
			errs = append(errs, errors.New("room without a name"))
		case seen[r.Name]:
			errs = append(errs, fmt.Errorf("duplicate room %q", r.Name))
		}
		seen[r.Name] = true

		if r.Clue != "" && !implicated[r.Clue] {
			errs = append(errs, fmt.Errorf("clue %q in room %q implicates nobody", r.Clue, r.Name))
		}
	})

	return errors.Join(errs...)
}
