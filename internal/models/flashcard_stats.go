package models

type DeckStat struct {
	TotalCards      int     `json:"total_cards"`
	CardsDue        int     `json:"cards_due"`
	CardsNew        int     `json:"cards_new"`
	TotalReviews    int     `json:"total_reviews"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

type QuestionStat struct {
	Total    int `json:"total"`
	Mastered int `json:"mastered"`
	Review   int `json:"review"`
}

type BreakdownStat struct {
	Label     string `json:"label"`
	Correct   int    `json:"correct"`
	Attempted int    `json:"attempted"`
	Rate      string `json:"rate"`
}

type SummaryStat struct {
	TotalCorrect   int             `json:"total_correct"`
	TotalAttempted int             `json:"total_attempted"`
	OverallRate    string          `json:"overall_rate"`
	BySubject      []BreakdownStat `json:"by_subject"`
	ByTag          []BreakdownStat `json:"by_tag"`
}

type GoalStat struct {
	Done       int     `json:"done"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
	Remaining  int     `json:"remaining"`
	Reached    bool    `json:"reached"`
}

type SessionSummary struct {
	Mode    string `json:"mode"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
	Total   int    `json:"total"`
	Rate    string `json:"rate"`
}
