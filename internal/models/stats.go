package models

import "time"

// DayKeyLayout formats the calendar-day keys of Stats.DailyProgress.
const DayKeyLayout = "2006-01-02"

// Stats holds the aggregate answer counters.
type Stats struct {
	TotalCorrect       int            `json:"totalCorrect"`
	TotalAttempted     int            `json:"totalAttempted"`
	CorrectByTag       map[string]int `json:"correctByTag"`
	AttemptedByTag     map[string]int `json:"attemptedByTag"`
	CorrectBySubject   map[string]int `json:"correctByDisciplina"`
	AttemptedBySubject map[string]int `json:"attemptedByDisciplina"`
	DailyProgress      map[string]int `json:"dailyProgress"`
}

// NewStats returns zeroed stats with every map allocated.
func NewStats() Stats {
	return Stats{
		CorrectByTag:       map[string]int{},
		AttemptedByTag:     map[string]int{},
		CorrectBySubject:   map[string]int{},
		AttemptedBySubject: map[string]int{},
		DailyProgress:      map[string]int{},
	}
}

// EnsureMaps allocates any nil map, e.g. after decoding partial JSON.
func (s *Stats) EnsureMaps() {
	if s.CorrectByTag == nil {
		s.CorrectByTag = map[string]int{}
	}
	if s.AttemptedByTag == nil {
		s.AttemptedByTag = map[string]int{}
	}
	if s.CorrectBySubject == nil {
		s.CorrectBySubject = map[string]int{}
	}
	if s.AttemptedBySubject == nil {
		s.AttemptedBySubject = map[string]int{}
	}
	if s.DailyProgress == nil {
		s.DailyProgress = map[string]int{}
	}
}

// DayKey is the DailyProgress key for the calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// AddDailyProgress increments today's counter.
func (s *Stats) AddDailyProgress(now time.Time) {
	s.EnsureMaps()
	s.DailyProgress[DayKey(now)]++
}

// DailyProgressOn returns the counter for the day of now.
func (s *Stats) DailyProgressOn(now time.Time) int {
	return s.DailyProgress[DayKey(now)]
}
