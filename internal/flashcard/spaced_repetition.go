package flashcard

import (
	"errors"
	"math"
	"time"

	"github.com/vytor/mindforge/internal/models"
)

const (
	MinEaseFactor     = 1.3
	DefaultEaseFactor = 2.5
)

// Answer qualities.
const (
	QualityHard = 1
	QualityGood = 2
	QualityEasy = 3
)

var ErrInvalidQuality = errors.New("quality must be 1, 2 or 3")

// ApplyReview updates flashcard scheduling using an SM-2 variant.
// quality: 1=Hard, 2=Good, 3=Easy
func ApplyReview(card models.Flashcard, quality int, now time.Time) (models.Flashcard, error) {
	if quality < QualityHard || quality > QualityEasy {
		return card, ErrInvalidQuality
	}

	miss := float64(3 - quality)
	ef := card.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}

	var interval int
	switch {
	case quality == QualityHard:
		interval = 1
	case card.Interval == 0:
		interval = 1
	case card.Interval == 1:
		interval = 6
	default:
		interval = int(math.Floor(float64(card.Interval)*ef + 0.5))
	}

	card.Interval = interval
	card.EaseFactor = ef
	card.DueAt = now.AddDate(0, 0, interval)
	return card, nil
}

// CountsTowardProgress reports whether an answer of this quality
// increments the daily progress counter.
func CountsTowardProgress(quality int) bool {
	return quality >= QualityGood
}

// IsDue reports whether the card's next review is at or before now.
func IsDue(card *models.Flashcard, now time.Time) bool {
	return !card.DueAt.After(now)
}

// DueCards returns the cards due at now, in deck order.
func DueCards(cards []*models.Flashcard, now time.Time) []*models.Flashcard {
	due := make([]*models.Flashcard, 0)
	for _, c := range cards {
		if IsDue(c, now) {
			due = append(due, c)
		}
	}
	return due
}

// NewCard returns a fresh card, due immediately.
func NewCard(id string, in models.FlashcardInput, now time.Time) *models.Flashcard {
	return &models.Flashcard{
		ID:         id,
		Front:      in.Front,
		Back:       in.Back,
		Subject:    in.Subject,
		Tags:       in.Tags,
		DueAt:      now,
		EaseFactor: DefaultEaseFactor,
	}
}
