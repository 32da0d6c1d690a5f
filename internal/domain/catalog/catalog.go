// Package catalog provides the activities the registry is seeded with.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/signup/internal/domain/model"
)

// Default returns the built-in activity table. Every call returns fresh slices.
func Default() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and compete in inter-school basketball games",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Soccer Club",
			Description:     "Train drills and play friendly soccer matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"noah@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and mixed media projects",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and stage the school plays",
			Schedule:        "Thursdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"isabella@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Build argumentation skills and compete in debate tournaments",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"amelia@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "harper@mergington.edu"},
		},
	}
}

type document struct {
	Activities []model.Activity `koanf:"activities"`
}

// LoadFile reads a YAML catalog of the form:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
func LoadFile(_ context.Context, path string) ([]model.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, path, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, path, err)
	}
	if err := Validate(doc.Activities); err != nil {
		return nil, err
	}
	return doc.Activities, nil
}

// Validate checks names are present, unpadded and unique, capacities are not negative
// and no roster lists an email twice.
func Validate(activities []model.Activity) error {
	if len(activities) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalidCatalog)
	}
	names := make(map[string]struct{}, len(activities))
	for i, a := range activities {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("%w: activity %d has no name", ErrInvalidCatalog, i)
		}
		if name != a.Name {
			return fmt.Errorf("%w: activity name %q has surrounding whitespace", ErrInvalidCatalog, a.Name)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalidCatalog, name)
		}
		names[name] = struct{}{}

		if a.MaxParticipants < 0 {
			return fmt.Errorf("%w: %q has negative max_participants", ErrInvalidCatalog, name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q lists %s twice", ErrInvalidCatalog, name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
