// Package stats derives read-only views over the answer counters.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/vytor/mindforge/internal/models"
)

// Rate formats correct/attempted as a one-decimal percentage.
func Rate(correct, attempted int) string {
	if attempted == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(correct)/float64(attempted)*100)
}

// BySubject returns one row per discipline, sorted by label.
func BySubject(s models.Stats) []models.BreakdownStat {
	return breakdown(s.CorrectBySubject, s.AttemptedBySubject)
}

// ByTag returns one row per tag, sorted by label.
func ByTag(s models.Stats) []models.BreakdownStat {
	return breakdown(s.CorrectByTag, s.AttemptedByTag)
}

func breakdown(correct, attempted map[string]int) []models.BreakdownStat {
	rows := make([]models.BreakdownStat, 0, len(attempted))
	for label, n := range attempted {
		c := correct[label]
		rows = append(rows, models.BreakdownStat{
			Label:     label,
			Correct:   c,
			Attempted: n,
			Rate:      Rate(c, n),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func Summarize(s models.Stats) models.SummaryStat {
	return models.SummaryStat{
		TotalCorrect:   s.TotalCorrect,
		TotalAttempted: s.TotalAttempted,
		OverallRate:    Rate(s.TotalCorrect, s.TotalAttempted),
		BySubject:      BySubject(s),
		ByTag:          ByTag(s),
	}
}

// DailyGoal reports today's progress against goal. The percentage is
// capped at 100.
func DailyGoal(s models.Stats, goal int, now time.Time) models.GoalStat {
	if goal < 1 {
		goal = models.DefaultDailyGoal
	}
	done := s.DailyProgressOn(now)
	pct := float64(done) / float64(goal) * 100
	if pct > 100 {
		pct = 100
	}
	remaining := goal - done
	if remaining < 0 {
		remaining = 0
	}
	return models.GoalStat{
		Done:       done,
		Goal:       goal,
		Percentage: pct,
		Remaining:  remaining,
		Reached:    done >= goal,
	}
}

func QuestionCounts(questions []*models.Question) models.QuestionStat {
	st := models.QuestionStat{Total: len(questions)}
	for _, q := range questions {
		if q.Mastered() {
			st.Mastered++
		}
	}
	st.Review = st.Total - st.Mastered
	return st
}

// DeckCounts summarizes the deck. reviews is the number of recorded
// review-history rows, which live outside the state snapshot.
func DeckCounts(cards []*models.Flashcard, reviews int, now time.Time) models.DeckStat {
	st := models.DeckStat{TotalCards: len(cards), TotalReviews: reviews}
	if len(cards) == 0 {
		return st
	}
	var ef, interval float64
	for _, c := range cards {
		if !c.DueAt.After(now) {
			st.CardsDue++
		}
		if c.Interval == 0 {
			st.CardsNew++
		}
		ef += c.EaseFactor
		interval += float64(c.Interval)
	}
	st.AvgEaseFactor = ef / float64(len(cards))
	st.AvgIntervalDays = interval / float64(len(cards))
	return st
}

// UniqueTags returns the sorted set of tags across questions and cards.
func UniqueTags(questions []*models.Question, cards []*models.Flashcard) []string {
	seen := map[string]bool{}
	for _, q := range questions {
		for _, t := range q.Tags {
			seen[t] = true
		}
	}
	for _, c := range cards {
		for _, t := range c.Tags {
			seen[t] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
