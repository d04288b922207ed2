package lending

import (
	"time"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
)

// DueSoonWindowDays bounds the "due soon" classification: a loan is due
// soon when its due date is between today and three days out, inclusive.
const DueSoonWindowDays = 3

// DaysLeft returns the whole days between today and the recorded due
// date. The second result is false when the date is missing or
// malformed; such records are skipped by classification, not treated as
// overdue.
func DaysLeft(returnDate string, today time.Time) (int, bool) {
	due, err := models.ParseDate(returnDate)
	if err != nil {
		return 0, false
	}
	days := int(due.Sub(truncateToDay(today)).Hours() / 24)
	return days, true
}

// IsDueSoon reports whether a loan with the given days-left count falls
// in the due-soon window.
func IsDueSoon(daysLeft int) bool {
	return daysLeft >= 0 && daysLeft <= DueSoonWindowDays
}

// IsOverdue reports whether the book is borrowed past its due date.
func IsOverdue(b models.Book, today time.Time) bool {
	if !b.IsBorrowed || b.ReturnDate == "" {
		return false
	}
	days, ok := DaysLeft(b.ReturnDate, today)
	return ok && days < 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
