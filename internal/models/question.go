package models

import "time"

// MasteryThreshold is the streak at which a question counts as mastered.
const MasteryThreshold = 3

// Option is one answer choice of a question.
type Option struct {
	Text    string `json:"texto"`
	Correct bool   `json:"correta"`
}

// Question is a multiple-choice item of the question bank.
type Question struct {
	ID          string    `json:"id"`
	Subject     string    `json:"disciplina"`
	Prompt      string    `json:"enunciado"`
	Options     []Option  `json:"opcoes"`
	Explanation string    `json:"resolucao"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"dataCriacao"`
	LastReview  time.Time `json:"ultimaRevisao"`
	Streak      int       `json:"acertosConsecutivos"`

	// SessionCorrect is only meaningful while a quiz session is running.
	SessionCorrect *bool `json:"-"`
}

// CorrectIndex returns the index of the correct option, or -1.
func (q *Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// Mastered reports whether the streak reached MasteryThreshold.
func (q *Question) Mastered() bool {
	return q.Streak >= MasteryThreshold
}

// HasTag reports whether the question carries tag.
func (q *Question) HasTag(tag string) bool {
	return containsTag(q.Tags, tag)
}

// QuestionInput is the editable content of a question.
type QuestionInput struct {
	Subject     string   `json:"disciplina"`
	Prompt      string   `json:"enunciado"`
	Options     []Option `json:"opcoes"`
	Explanation string   `json:"resolucao"`
	Tags        []string `json:"tags"`
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
