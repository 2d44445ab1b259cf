package domain

import "time"

const dateLayout = "2006-01-02"

type Streak struct {
	Current            int    `json:"current"`
	Longest            int    `json:"longest"`
	LastCompletionDate string `json:"last_completion_date,omitempty"`
}

// Advance records a completion on the calendar day of today. It returns the
// receiver unchanged and false when that day was already counted. A
// completion on the day after the last one extends the run; any other gap, or
// no history at all, starts a new run of one.
func (s Streak) Advance(today time.Time) (Streak, bool) {
	day := today.Format(dateLayout)
	if s.LastCompletionDate == day {
		return s, false
	}
	yesterday := today.AddDate(0, 0, -1).Format(dateLayout)
	current := 1
	if s.LastCompletionDate == yesterday {
		current = s.Current + 1
	}
	return Streak{
		Current:            current,
		Longest:            max(current, s.Longest),
		LastCompletionDate: day,
	}, true
}
