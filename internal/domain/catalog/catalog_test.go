package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/signup/internal/domain/catalog"
	"github.com/okian/signup/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	convey.Convey("Given the built-in catalog", t, func() {
		activities := catalog.Default()

		convey.Convey("Then it is valid and holds the school activities", func() {
			convey.So(catalog.Validate(activities), convey.ShouldBeNil)

			byName := map[string]model.Activity{}
			for _, a := range activities {
				byName[a.Name] = a
			}
			for _, name := range []string{
				"Chess Club", "Programming Class", "Gym Class", "Basketball Team", "Soccer Club",
				"Art Club", "Drama Club", "Debate Team", "Math Club",
			} {
				convey.So(byName, convey.ShouldContainKey, name)
			}
			convey.So(byName["Chess Club"].Participants, convey.ShouldResemble,
				[]string{"michael@mergington.edu", "daniel@mergington.edu"})
		})

		convey.Convey("Then no seeded roster exceeds its capacity", func() {
			for _, a := range activities {
				convey.So(a.SpotsLeft(), convey.ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		convey.Convey("When one result is mutated", func() {
			activities[0].Participants[0] = "changed@mergington.edu"

			convey.Convey("Then a second call is unaffected", func() {
				convey.So(catalog.Default()[0].Participants[0], convey.ShouldEqual, "michael@mergington.edu")
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	convey.Convey("Given a YAML catalog file", t, func() {
		ctx := context.Background()

		convey.Convey("When it is well formed", func() {
			path := writeCatalog(t, `
activities:
  - name: Robotics
    description: Build robots
    schedule: Saturdays, 10:00 AM - 12:00 PM
    max_participants: 8
    participants:
      - ada@mergington.edu
  - name: Choir
    description: Sing together
    schedule: Mondays, 4:00 PM - 5:00 PM
    max_participants: 40
`)
			activities, err := catalog.LoadFile(ctx, path)

			convey.Convey("Then every activity is decoded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(activities), convey.ShouldEqual, 2)
				convey.So(activities[0].Name, convey.ShouldEqual, "Robotics")
				convey.So(activities[0].MaxParticipants, convey.ShouldEqual, 8)
				convey.So(activities[0].Participants, convey.ShouldResemble, []string{"ada@mergington.edu"})
				convey.So(activities[1].Participants, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When two activities share a name", func() {
			path := writeCatalog(t, `
activities:
  - name: Choir
    max_participants: 4
  - name: Choir
    max_participants: 5
`)
			_, err := catalog.LoadFile(ctx, path)

			convey.Convey("Then it is rejected as invalid", func() {
				convey.So(errors.Is(err, catalog.ErrInvalidCatalog), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a name carries surrounding whitespace", func() {
			path := writeCatalog(t, `
activities:
  - name: " Chess Club"
    max_participants: 12
`)
			_, err := catalog.LoadFile(ctx, path)

			convey.Convey("Then it is rejected as invalid", func() {
				convey.So(errors.Is(err, catalog.ErrInvalidCatalog), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := catalog.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, catalog.ErrLoadCatalog), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is broken", func() {
			path := writeCatalog(t, "activities: [")
			_, err := catalog.LoadFile(ctx, path)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, catalog.ErrLoadCatalog), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given invalid catalogs", t, func() {
		cases := map[string][]model.Activity{
			"empty":              nil,
			"blank name":         {{Name: "  ", MaxParticipants: 1}},
			"padded name":        {{Name: " Chess Club", MaxParticipants: 12}},
			"negative capacity":  {{Name: "Choir", MaxParticipants: -1}},
			"duplicate roster":   {{Name: "Choir", MaxParticipants: 3, Participants: []string{"a@x", "a@x"}}},
			"duplicate activity": {{Name: "Choir"}, {Name: "Choir"}},
		}

		for name, activities := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				convey.So(errors.Is(catalog.Validate(activities), catalog.ErrInvalidCatalog), convey.ShouldBeTrue)
			})
		}
	})
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
