// Package state converts AppState to and from its six persisted sections.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
)

// Section keys, shared by storage and the export document.
const (
	SectionQuizData      = "quizData"
	SectionFlashcardData = "flashcardData"
	SectionStats         = "stats"
	SectionDailyGoal     = "dailyGoal"
	SectionCronograma    = "cronograma"
	SectionSettings      = "settings"
)

// Sections lists every section in export order.
var Sections = []string{
	SectionQuizData,
	SectionFlashcardData,
	SectionStats,
	SectionDailyGoal,
	SectionCronograma,
	SectionSettings,
}

var ErrMalformedImport = errors.New("malformed import document")

// Encode serializes every section of s.
func Encode(s *models.AppState) (map[string][]byte, error) {
	values := map[string]any{
		SectionQuizData:      s.Questions,
		SectionFlashcardData: s.Flashcards,
		SectionStats:         s.Stats,
		SectionDailyGoal:     s.DailyGoal,
		SectionCronograma:    s.Cronograma,
		SectionSettings:      s.Settings,
	}
	out := make(map[string][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = b
	}
	return out, nil
}

// Decode rebuilds the state from stored sections. A missing or malformed
// section falls back to its default and is logged; the others load
// normally. Daily progress is pruned to the day of now.
func Decode(ctx context.Context, sections map[string][]byte, now time.Time) *models.AppState {
	log := logger.FromContext(ctx).WithPrefix("state")
	s := models.NewAppState()

	load := func(key string, dst any) bool {
		raw, ok := sections[key]
		if !ok || len(raw) == 0 {
			return false
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			log.WithField("section", key).Warn("discarding malformed section: %v", err)
			return false
		}
		return true
	}

	var questions []*models.Question
	if load(SectionQuizData, &questions) {
		s.Questions = compact(questions)
	}
	var cards []*models.Flashcard
	if load(SectionFlashcardData, &cards) {
		s.Flashcards = compact(cards)
	}
	var st models.Stats
	if load(SectionStats, &st) {
		s.Stats = st
	}
	var goal json.RawMessage
	if load(SectionDailyGoal, &goal) {
		s.DailyGoal = ParseDailyGoal(goal)
	}
	var c models.Cronograma
	if load(SectionCronograma, &c) {
		s.Cronograma = c
	}
	var settings models.Settings
	if load(SectionSettings, &settings) {
		s.Settings = settings
	}

	normalize(s)
	PruneDailyProgress(&s.Stats, now)
	log.Debug("state loaded: %d questions, %d flashcards, %d subjects",
		len(s.Questions), len(s.Flashcards), len(s.Cronograma.Subjects))
	return s
}

// PruneDailyProgress keeps only the counter for the day of now,
// creating it at zero.
func PruneDailyProgress(st *models.Stats, now time.Time) {
	st.EnsureMaps()
	key := models.DayKey(now)
	today := st.DailyProgress[key]
	st.DailyProgress = map[string]int{key: today}
}

// ParseDailyGoal reads a goal stored as a number or a numeric string.
// Fractions are truncated; anything invalid or below 1 yields the default.
func ParseDailyGoal(raw json.RawMessage) int {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.DefaultDailyGoal
	}
	var goal int
	switch t := v.(type) {
	case float64:
		goal = int(t)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return models.DefaultDailyGoal
		}
		goal = int(n)
	default:
		return models.DefaultDailyGoal
	}
	if goal < 1 {
		return models.DefaultDailyGoal
	}
	return goal
}

func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// normalize fills the nil collections a partial document may leave.
func normalize(s *models.AppState) {
	if s.Questions == nil {
		s.Questions = []*models.Question{}
	}
	if s.Flashcards == nil {
		s.Flashcards = []*models.Flashcard{}
	}
	for _, q := range s.Questions {
		if q.Tags == nil {
			q.Tags = []string{}
		}
		if q.Streak < 0 {
			q.Streak = 0
		}
	}
	for _, c := range s.Flashcards {
		if c.Tags == nil {
			c.Tags = []string{}
		}
	}
	s.Stats.EnsureMaps()
	if s.DailyGoal < 1 {
		s.DailyGoal = models.DefaultDailyGoal
	}
	if s.Cronograma.Subjects == nil {
		s.Cronograma.Subjects = []models.Subject{}
	}
	if s.Cronograma.Weeks == nil {
		s.Cronograma.Weeks = []models.WeekBlock{}
	}
	s.Cronograma.ColorCursor = len(s.Cronograma.Subjects)
	if s.Settings.Theme != models.ThemeLight {
		s.Settings.Theme = models.ThemeDark
	}
}
