package appointment

import "sort"

// Filter selects which statuses the list view shows.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterScheduled Filter = "Scheduled"
	FilterCompleted Filter = "Completed"
)

// SortByTime returns a copy of the list in stable ascending lexical
// order of appointment_time, with missing times sorting first.
func SortByTime(list []Appointment) []Appointment {
	out := make([]Appointment, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		return timeOrDefault(out[i]) < timeOrDefault(out[j])
	})
	return out
}

// ApplyFilter is a pure, order-preserving projection over the last
// fetched list. It never re-fetches.
func ApplyFilter(list []Appointment, filter Filter) []Appointment {
	switch filter {
	case FilterScheduled:
		return keepStatus(list, StatusScheduled)
	case FilterCompleted:
		return keepStatus(list, StatusCompleted)
	default:
		out := make([]Appointment, len(list))
		copy(out, list)
		return out
	}
}

func keepStatus(list []Appointment, status string) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}
