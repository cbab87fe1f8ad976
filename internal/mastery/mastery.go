// Package mastery tracks consecutive-correctness of quiz questions and
// builds practice sessions.
package mastery

import (
	"errors"
	"strings"
	"time"

	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/sampler"
)

// MasteryThreshold is the streak at which a question counts as mastered.
const MasteryThreshold = models.MasteryThreshold

const (
	DefaultSubject = "Geral"
	DefaultTag     = "geral"
)

// Session modes.
const (
	ModeRevision = "revisao"
	ModeNormal   = "normal"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrTooFewOptions        = errors.New("a question needs at least two options")
	ErrNoCorrectOption      = errors.New("a question needs one correct option")
	ErrMultipleCorrect      = errors.New("a question must have exactly one correct option")
)

type Config struct {
	RevisionBias float64
	SessionSize  int
}

func DefaultConfig() Config {
	return Config{RevisionBias: 0.7, SessionSize: 10}
}

type Tracker struct {
	cfg     Config
	sampler sampler.Sampler
}

func NewTracker(s sampler.Sampler, cfg Config) *Tracker {
	if cfg.SessionSize < 1 {
		cfg.SessionSize = DefaultConfig().SessionSize
	}
	return &Tracker{cfg: cfg, sampler: s}
}

// RecordAnswer applies one answer (or skip) to the question and stats.
// Skips reset the streak but are not counted as attempts.
func (t *Tracker) RecordAnswer(stats *models.Stats, q *models.Question, correct, skipped bool, now time.Time) {
	if correct && !skipped {
		q.Streak++
	} else {
		q.Streak = 0
	}
	q.LastReview = now

	if skipped {
		return
	}
	result := correct
	q.SessionCorrect = &result

	stats.EnsureMaps()
	subject := q.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	tags := q.Tags
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}

	stats.TotalAttempted++
	stats.AttemptedBySubject[subject]++
	for _, tag := range tags {
		stats.AttemptedByTag[tag]++
	}
	if !correct {
		return
	}
	stats.TotalCorrect++
	stats.CorrectBySubject[subject]++
	for _, tag := range tags {
		stats.CorrectByTag[tag]++
	}
	stats.AddDailyProgress(now)
}

// IsMastered reports whether the question reached the streak threshold.
func IsMastered(q *models.Question) bool {
	return q.Mastered()
}

// ForceMastery sets the streak to the threshold or back to zero.
func ForceMastery(q *models.Question, mastered bool, now time.Time) {
	if mastered {
		q.Streak = MasteryThreshold
	} else {
		q.Streak = 0
	}
	q.LastReview = now
}

// BuildSession selects the questions of a new quiz session. Questions
// still under review are favoured with probability RevisionBias.
func (t *Tracker) BuildSession(all []*models.Question) ([]*models.Question, string, error) {
	var due []*models.Question
	for _, q := range all {
		if !IsMastered(q) {
			due = append(due, q)
		}
	}

	if len(due) > 0 && sampler.Chance(t.sampler, t.cfg.RevisionBias) {
		return sampler.Shuffled(t.sampler, due), ModeRevision, nil
	}
	if len(all) > 0 {
		return sampler.Sample(t.sampler, all, t.cfg.SessionSize), ModeNormal, nil
	}
	return nil, "", ErrNoQuestionsAvailable
}

// ValidateQuestion checks the option invariants required before saving.
func ValidateQuestion(q *models.Question) error {
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	correct := 0
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
	}
	switch {
	case correct == 0:
		return ErrNoCorrectOption
	case correct > 1:
		return ErrMultipleCorrect
	}
	return nil
}

// NormalizeTags lowercases and trims tags, dropping blanks and duplicates.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
