package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func date(s string) *string { return &s }

func TestConflicts(t *testing.T) {
	base := AvailabilitySlotModel{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", IsRecurring: true}

	cases := []struct {
		name  string
		other AvailabilitySlotModel
		want  bool
	}{
		{"overlap recurring", AvailabilitySlotModel{DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30", IsRecurring: true}, true},
		{"adjacent", AvailabilitySlotModel{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00", IsRecurring: true}, false},
		{"other day", AvailabilitySlotModel{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", IsRecurring: true}, false},
		{"specific vs recurring", AvailabilitySlotModel{DayOfWeek: 1, StartTime: "08:30", EndTime: "09:15", SpecificDate: date("2025-03-10")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Conflicts(&tc.other))
		})
	}

	a := AvailabilitySlotModel{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", SpecificDate: date("2025-03-10")}
	b := AvailabilitySlotModel{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", SpecificDate: date("2025-03-17")}
	assert.False(t, a.Conflicts(&b))
	b.SpecificDate = date("2025-03-10")
	assert.True(t, a.Conflicts(&b))
}
