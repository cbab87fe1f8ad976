package models

import "time"

type Flashcard struct {
	ID         string    `json:"id"`
	Front      string    `json:"frente"`
	Back       string    `json:"verso"`
	Subject    string    `json:"disciplina"`
	Tags       []string  `json:"tags"`
	DueAt      time.Time `json:"proxRevisao"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ef"`
}

// HasTag reports whether the card carries tag.
func (c *Flashcard) HasTag(tag string) bool {
	return containsTag(c.Tags, tag)
}

// FlashcardInput is the editable content of a flashcard.
type FlashcardInput struct {
	Front   string   `json:"frente"`
	Back    string   `json:"verso"`
	Subject string   `json:"disciplina"`
	Tags    []string `json:"tags"`
}

type ReviewHistory struct {
	ID           int64     `json:"id"`
	FlashcardID  string    `json:"flashcard_id"`
	Quality      int       `json:"quality"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}
