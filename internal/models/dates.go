package models

import "time"

// DateLayout is the day/month/year format used in stored records and
// API payloads.
const DateLayout = "02/01/2006"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
