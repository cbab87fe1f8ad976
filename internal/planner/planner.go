// Package planner distributes a weekly study-hour budget across subjects
// and days up to a deadline.
package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/sampler"
)

var (
	ErrNoSubjects     = errors.New("add at least one subject before generating the plan")
	ErrNoDeadline     = errors.New("a deadline is required")
	ErrDeadlineInPast = errors.New("the deadline must not be in the past")
	ErrInvalidHours   = errors.New("hours must be a non-negative number")
	ErrWeekNotFound   = errors.New("week not found")
	ErrDayOutOfRange  = errors.New("day index must be between 0 and 6")
	ErrInvalidSubject = errors.New("subject needs a name and at least one hour per week")
	ErrDuplicate      = errors.New("subject already exists")
	ErrSubjectMissing = errors.New("subject not found")
)

// Palette is cycled through when subjects are added.
var Palette = []string{
	"#E74C3C", "#3498DB", "#27AE60", "#F39C12", "#9B59B6",
	"#1ABC9C", "#D35400", "#2980B9", "#8E44AD", "#C0392B",
}

type Config struct {
	// SafetyFactor bounds the picks per week at SafetyFactor * len(subjects).
	SafetyFactor  int
	MaxBlockHours float64
	JitterSpread  float64
}

func DefaultConfig() Config {
	return Config{SafetyFactor: 5, MaxBlockHours: 2, JitterSpread: 0.75}
}

type Planner struct {
	cfg     Config
	sampler sampler.Sampler
}

func New(s sampler.Sampler, cfg Config) *Planner {
	def := DefaultConfig()
	if cfg.SafetyFactor < 1 {
		cfg.SafetyFactor = def.SafetyFactor
	}
	if cfg.MaxBlockHours <= 0 {
		cfg.MaxBlockHours = def.MaxBlockHours
	}
	if cfg.JitterSpread < 0 {
		cfg.JitterSpread = def.JitterSpread
	}
	return &Planner{cfg: cfg, sampler: s}
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Generate rebuilds the weeks of c up to deadline. A nil deadline reuses
// the stored one. On error c is left untouched.
func (p *Planner) Generate(c *models.Cronograma, deadline *time.Time, now time.Time) error {
	if deadline == nil {
		deadline = c.Deadline
	}
	if deadline == nil {
		return ErrNoDeadline
	}
	if len(c.Subjects) == 0 {
		return ErrNoSubjects
	}
	today := Midnight(now)
	y, m, d := deadline.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if end.Before(today) {
		return ErrDeadlineInPast
	}

	total := 0
	for _, s := range c.Subjects {
		total += s.HoursPerWeek
	}

	start := today.AddDate(0, 0, 7-int(today.Weekday()))
	weeks := make([]models.WeekBlock, 0)
	for id := 1; !start.After(end); id++ {
		weeks = append(weeks, p.buildWeek(c.Subjects, id, start, float64(total)))
		start = start.AddDate(0, 0, 7)
	}

	c.Deadline = &end
	c.Weeks = weeks
	return nil
}

func (p *Planner) buildWeek(subjects []models.Subject, id int, start time.Time, total float64) models.WeekBlock {
	week := models.WeekBlock{
		ID:    fmt.Sprintf("s%d", id),
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
	for d := range week.Days {
		week.Days[d] = models.DaySlot{Day: d, Subjects: []models.DaySubject{}}
	}

	average := total / 6
	maxPicks := p.cfg.SafetyFactor * len(subjects)
	// The cursor runs across the whole week and doubles as the safety bound:
	// past maxPicks every remaining day gets a single pick.
	cursor := 0
	distributed := 0.0

	for d := 1; d <= 6; d++ {
		day := &week.Days[d]
		target := math.Max(1, roundHalfUp(average+sampler.Jitter(p.sampler, p.cfg.JitterSpread)))

		for day.Hours < target && distributed < total {
			subject := subjects[cursor%len(subjects)]

			hours := math.Min(
				math.Min(p.cfg.MaxBlockHours, target-day.Hours),
				math.Min(float64(subject.HoursPerWeek), total-distributed),
			)
			if hours > 0 {
				day.Subjects = append(day.Subjects, models.DaySubject{
					Name:  subject.Name,
					Hours: hours,
					Color: subject.Color,
				})
				day.Hours += hours
				distributed += hours
			}

			cursor++
			if cursor > maxPicks {
				break
			}
		}
	}

	week.TotalHours = distributed
	return week
}

// WeekAt returns the week at a zero-based index.
func WeekAt(c *models.Cronograma, index int) (*models.WeekBlock, error) {
	if index < 0 || index >= len(c.Weeks) {
		return nil, ErrWeekNotFound
	}
	return &c.Weeks[index], nil
}

func daySlot(c *models.Cronograma, weekID string, day int) (*models.WeekBlock, *models.DaySlot, error) {
	week := c.Week(weekID)
	if week == nil {
		return nil, nil, ErrWeekNotFound
	}
	if day < 0 || day >= len(week.Days) {
		return nil, nil, ErrDayOutOfRange
	}
	return week, &week.Days[day], nil
}

func recomputeCompleted(week *models.WeekBlock) {
	sum := 0.0
	for _, d := range week.Days {
		if d.Completed {
			sum += d.Hours
		}
	}
	week.CompletedHours = sum
}

func recomputeTotal(week *models.WeekBlock) {
	sum := 0.0
	for _, d := range week.Days {
		sum += d.Hours
	}
	week.TotalHours = sum
}

// MarkDayComplete sets a day's completion flag. It reports false when
// the flag already had that value.
func MarkDayComplete(c *models.Cronograma, weekID string, day int, completed bool) (bool, error) {
	week, slot, err := daySlot(c, weekID, day)
	if err != nil {
		return false, err
	}
	if slot.Completed == completed {
		return false, nil
	}
	slot.Completed = completed
	recomputeCompleted(week)
	return true, nil
}

// SetActualHours records the hours actually studied on a day. Changing
// the hours of a completed day clears its completion. The subjects
// listed for the day keep their original split.
func SetActualHours(c *models.Cronograma, weekID string, day int, hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return ErrInvalidHours
	}
	week, slot, err := daySlot(c, weekID, day)
	if err != nil {
		return err
	}
	if hours == slot.Hours {
		return nil
	}
	if slot.Completed {
		slot.Completed = false
		recomputeCompleted(week)
	}
	slot.Hours = hours
	recomputeTotal(week)
	return nil
}

func findSubject(c *models.Cronograma, name string) int {
	for i, s := range c.Subjects {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

func appendSubject(c *models.Cronograma, name string, hours int) {
	c.Subjects = append(c.Subjects, models.Subject{
		Name:         name,
		HoursPerWeek: hours,
		Color:        Palette[c.ColorCursor%len(Palette)],
	})
	c.ColorCursor++
}

// AddSubject appends a subject with the next palette colour.
func AddSubject(c *models.Cronograma, name string, hours int) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" || hours < 1 {
		return nil, ErrInvalidSubject
	}
	if findSubject(c, name) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	appendSubject(c, name, hours)
	return &c.Subjects[len(c.Subjects)-1], nil
}

// RemoveSubject deletes a subject and invalidates the generated weeks.
func RemoveSubject(c *models.Cronograma, name string) error {
	i := findSubject(c, name)
	if i < 0 {
		return ErrSubjectMissing
	}
	c.Subjects = append(c.Subjects[:i], c.Subjects[i+1:]...)
	c.Weeks = []models.WeekBlock{}
	c.ColorCursor = 0
	return nil
}

// Reset clears subjects, deadline, weeks and the colour cursor.
func Reset(c *models.Cronograma) {
	*c = models.NewCronograma()
}

// ImportSubjects merges entries by case-insensitive name. Invalid and
// duplicate entries are skipped. Weeks are cleared when anything was
// added. It returns the number of subjects added.
func ImportSubjects(c *models.Cronograma, entries []models.SubjectInput) int {
	added := 0
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		hours, ok := parseHours(e.HoursPerWeek)
		if name == "" || !ok || hours < 1 {
			continue
		}
		if findSubject(c, name) >= 0 {
			continue
		}
		appendSubject(c, name, hours)
		added++
	}
	if added > 0 {
		c.Weeks = []models.WeekBlock{}
	}
	return added
}

// parseHours truncates fractional hours the way integer parsing would.
func parseHours(n json.Number) (int, bool) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
