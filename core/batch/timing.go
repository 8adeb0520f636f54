package batch

import (
	"regexp"
	"strings"
)

// Days of the week as the day-picker encodes them.
var Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var timeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Timing is a Batch schedule: either the structured day-picker encoding
// "Day, Day | HH:MM - HH:MM" or an arbitrary free-text string. The wire
// format stays a single string for backup compatibility.
type Timing struct {
	Structured bool
	Days       []string
	Start      string
	End        string
	FreeText   string
}

// ParseTiming classifies a timing string. It is structured only when it has
// the exact "days | HH:MM - HH:MM" shape with at least one known day name;
// anything else (including free text that merely happens to contain both
// '|' and '-') stays free text.
func ParseTiming(s string) Timing {
	free := Timing{FreeText: s}

	if !strings.Contains(s, "|") {
		return free
	}
	parts := strings.SplitN(s, "|", 2)
	daysPart := strings.TrimSpace(parts[0])
	timePart := strings.TrimSpace(parts[1])

	times := strings.SplitN(timePart, "-", 2)
	if len(times) != 2 {
		return free
	}
	start, end := strings.TrimSpace(times[0]), strings.TrimSpace(times[1])
	if !timeRegex.MatchString(start) || !timeRegex.MatchString(end) {
		return free
	}

	var days []string
	for _, d := range strings.Split(daysPart, ",") {
		if d = strings.TrimSpace(d); isDay(d) {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return free
	}

	return Timing{Structured: true, Days: days, Start: start, End: end}
}

// String re-serializes a Timing to its wire format. Parsing a structured
// string and re-serializing it yields the identical string.
func (t Timing) String() string {
	if !t.Structured {
		return t.FreeText
	}
	return strings.Join(t.Days, ", ") + " | " + t.Start + " - " + t.End
}

func isDay(s string) bool {
	for _, d := range Days {
		if d == s {
			return true
		}
	}
	return false
}
