package appointments

import (
	"sort"
	"time"

	"github.com/vidanutri/nutriview/internal/nutricore"
)

const dayLabelFormat = "Monday, 2 January 2006"

// DayGroup is one calendar day worth of appointments, ready for rendering.
type DayGroup struct {
	Day          time.Time               `json:"day"`
	Label        string                  `json:"label"`
	Appointments []nutricore.Appointment `json:"appointments"`
}

// GroupByDay groups appointments by their calendar day and returns the
// groups in ascending day order, each group's appointments sorted by their
// time of day. Grouping is stable against input order: any permutation of
// the same appointments produces the same result.
//
// The day is taken from the date part only, a trailing time or zone suffix
// is ignored. Appointments with an unparseable date still get a group, keyed
// and labeled by the raw date string, so nothing silently disappears.
func GroupByDay(appointments []nutricore.Appointment) []DayGroup {
	byDay := make(map[string][]nutricore.Appointment)
	for _, appointment := range appointments {
		key := dayKey(appointment.Date)
		byDay[key] = append(byDay[key], appointment)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	// day keys are YYYY-MM-DD, lexicographic order is chronological order
	sort.Strings(keys)

	groups := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		dayAppointments := byDay[key]
		sort.SliceStable(dayAppointments, func(i, j int) bool {
			return dayAppointments[i].Time < dayAppointments[j].Time
		})

		group := DayGroup{
			Label:        key,
			Appointments: dayAppointments,
		}
		if day, err := time.Parse("2006-01-02", key); err == nil {
			group.Day = day.UTC()
			group.Label = day.Format(dayLabelFormat)
		}
		groups = append(groups, group)
	}

	return groups
}

func dayKey(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
