package model_test

import (
	"testing"

	model "github.com/okian/signup/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	convey.Convey("Given an activity with two participants", t, func() {
		a := model.Activity{
			Name:            "Chess Club",
			MaxParticipants: 3,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}

		convey.Convey("Then roster lookups work", func() {
			convey.So(a.Has("daniel@mergington.edu"), convey.ShouldBeTrue)
			convey.So(a.IndexOf("daniel@mergington.edu"), convey.ShouldEqual, 1)
			convey.So(a.Has("nobody@mergington.edu"), convey.ShouldBeFalse)
			convey.So(a.IndexOf("nobody@mergington.edu"), convey.ShouldEqual, -1)
		})

		convey.Convey("Then capacity helpers reflect the roster", func() {
			convey.So(a.SpotsLeft(), convey.ShouldEqual, 1)
			convey.So(a.IsFull(), convey.ShouldBeFalse)

			a.Participants = append(a.Participants, "emma@mergington.edu")
			convey.So(a.SpotsLeft(), convey.ShouldEqual, 0)
			convey.So(a.IsFull(), convey.ShouldBeTrue)
		})

		convey.Convey("When cloning", func() {
			c := a.Clone()
			c.Participants[0] = "changed@mergington.edu"

			convey.Convey("Then the original roster is untouched", func() {
				convey.So(a.Participants[0], convey.ShouldEqual, "michael@mergington.edu")
				convey.So(c.Name, convey.ShouldEqual, a.Name)
			})
		})
	})

	convey.Convey("Given an activity with a nil roster", t, func() {
		a := model.Activity{Name: "Math Club", MaxParticipants: 0}

		convey.Convey("Then it is full and clones safely", func() {
			convey.So(a.IsFull(), convey.ShouldBeTrue)
			convey.So(len(a.Clone().Participants), convey.ShouldEqual, 0)
		})
	})
}
