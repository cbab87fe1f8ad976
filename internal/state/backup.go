package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/mindforge/internal/models"
)

type exportDocument struct {
	QuizData      []*models.Question  `json:"quizData"`
	FlashcardData []*models.Flashcard `json:"flashcardData"`
	Stats         models.Stats        `json:"stats"`
	DailyGoal     int                 `json:"dailyGoal"`
	Cronograma    models.Cronograma   `json:"cronograma"`
	Settings      models.Settings     `json:"settings"`
}

// Export renders the full backup document, indented.
func Export(s *models.AppState) ([]byte, error) {
	doc := exportDocument{
		QuizData:      s.Questions,
		FlashcardData: s.Flashcards,
		Stats:         s.Stats,
		DailyGoal:     s.DailyGoal,
		Cronograma:    s.Cronograma,
		Settings:      s.Settings,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Patch holds the sections present in an import document. Nil fields
// were absent and are left untouched by Apply.
type Patch struct {
	Questions  *[]*models.Question
	Flashcards *[]*models.Flashcard
	Stats      *models.Stats
	DailyGoal  *int
	Cronograma *models.Cronograma
	Settings   *models.Settings
}

// Sections returns the keys present in the patch, in export order.
func (p *Patch) Sections() []string {
	present := map[string]bool{
		SectionQuizData:      p.Questions != nil,
		SectionFlashcardData: p.Flashcards != nil,
		SectionStats:         p.Stats != nil,
		SectionDailyGoal:     p.DailyGoal != nil,
		SectionCronograma:    p.Cronograma != nil,
		SectionSettings:      p.Settings != nil,
	}
	var keys []string
	for _, k := range Sections {
		if present[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseImport decodes an import document. Sections that are absent or
// null are skipped. Any malformed section rejects the whole document.
func ParseImport(data []byte) (*Patch, error) {
	if err := validateImport(data); err != nil {
		return nil, err
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	p := &Patch{}
	section := func(key string, dst any) (bool, error) {
		raw, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return false, nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return false, fmt.Errorf("%w: %s: %v", ErrMalformedImport, key, err)
		}
		return true, nil
	}

	var questions []*models.Question
	if ok, err := section(SectionQuizData, &questions); err != nil {
		return nil, err
	} else if ok {
		questions = compact(questions)
		p.Questions = &questions
	}
	var cards []*models.Flashcard
	if ok, err := section(SectionFlashcardData, &cards); err != nil {
		return nil, err
	} else if ok {
		cards = compact(cards)
		p.Flashcards = &cards
	}
	var st models.Stats
	if ok, err := section(SectionStats, &st); err != nil {
		return nil, err
	} else if ok {
		p.Stats = &st
	}
	var goal json.RawMessage
	if ok, err := section(SectionDailyGoal, &goal); err != nil {
		return nil, err
	} else if ok {
		g := ParseDailyGoal(goal)
		p.DailyGoal = &g
	}
	var c models.Cronograma
	if ok, err := section(SectionCronograma, &c); err != nil {
		return nil, err
	} else if ok {
		p.Cronograma = &c
	}
	var settings models.Settings
	if ok, err := section(SectionSettings, &settings); err != nil {
		return nil, err
	} else if ok {
		p.Settings = &settings
	}
	return p, nil
}

// Apply replaces the sections of s present in the patch. Imported stats
// keep only today's progress counter.
func (p *Patch) Apply(s *models.AppState, now time.Time) {
	if p.Questions != nil {
		s.Questions = *p.Questions
	}
	if p.Flashcards != nil {
		s.Flashcards = *p.Flashcards
	}
	if p.Stats != nil {
		s.Stats = *p.Stats
		PruneDailyProgress(&s.Stats, now)
	}
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.Cronograma != nil {
		s.Cronograma = *p.Cronograma
	}
	if p.Settings != nil {
		s.Settings = *p.Settings
	}
	normalize(s)
}
