package flashcard

import (
	"errors"
	"time"

	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/sampler"
)

// DefaultStudySetSize caps a study set when enough cards exist.
const DefaultStudySetSize = 10

var ErrNothingToStudy = errors.New("no flashcards to study")

type Scheduler struct {
	sampler sampler.Sampler
	setSize int
}

func NewScheduler(s sampler.Sampler, setSize int) *Scheduler {
	if setSize < 1 {
		setSize = DefaultStudySetSize
	}
	return &Scheduler{sampler: s, setSize: setSize}
}

// BuildStudySet returns every due card matching tag, topped up with a
// random sample of not-yet-due cards, in shuffled order. An empty tag
// matches all cards.
func (s *Scheduler) BuildStudySet(cards []*models.Flashcard, tag string, now time.Time) ([]*models.Flashcard, error) {
	var due, ahead []*models.Flashcard
	for _, c := range cards {
		if tag != "" && !c.HasTag(tag) {
			continue
		}
		if IsDue(c, now) {
			due = append(due, c)
		} else {
			ahead = append(ahead, c)
		}
	}

	set := due
	if missing := s.setSize - len(due); missing > 0 {
		set = append(set, sampler.Sample(s.sampler, ahead, missing)...)
	}
	if len(set) == 0 {
		return nil, ErrNothingToStudy
	}
	return sampler.Shuffled(s.sampler, set), nil
}

// Session walks a study set one card at a time.
type Session struct {
	IDs     []string
	Index   int
	Flipped bool
}

func NewSession(cards []*models.Flashcard) *Session {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return &Session{IDs: ids}
}

// Current returns the ID under the cursor, or "" when done.
func (s *Session) Current() string {
	if s.Done() {
		return ""
	}
	return s.IDs[s.Index]
}

// Flip turns the current card between front and back.
func (s *Session) Flip() {
	if !s.Done() {
		s.Flipped = !s.Flipped
	}
}

// Advance moves to the next card, hiding its back.
func (s *Session) Advance() {
	if s.Done() {
		return
	}
	s.Index++
	s.Flipped = false
}

func (s *Session) Done() bool {
	return s.Index >= len(s.IDs)
}

func (s *Session) Remaining() int {
	if s.Done() {
		return 0
	}
	return len(s.IDs) - s.Index
}
