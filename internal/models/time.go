package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// layouts aceitos para next_interview_date (datetime-local do navegador não traz segundos nem fuso)
var interviewLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInterviewTime parses zone-less layouts in loc.
func ParseInterviewTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range interviewLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

const interviewInputLayout = "2006-01-02T15:04"

// FormatInterviewInput renders t in loc for an <input type="datetime-local">.
func FormatInterviewInput(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(interviewInputLayout)
}

// InterviewInstant converts a datetime-local value read in loc to RFC3339,
// so the receiver does not depend on its own zone. Unparsable input is returned as is.
func InterviewInstant(s string, loc *time.Location) string {
	t, err := ParseInterviewTime(s, loc)
	if err != nil {
		return s
	}
	return t.Format(time.RFC3339)
}
