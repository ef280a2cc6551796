package engine

import "time"

// NoAvailability is the sentinel suggested time when a day is fully booked.
const NoAvailability = "No available time"

// formatDate renders a reference-zone date as "Monday, January 02".
func formatDate(t time.Time) string {
	return t.Format("Monday, January 02")
}

// formatClock renders a reference-zone time as "3:04 PM".
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
