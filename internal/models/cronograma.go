package models

import (
	"encoding/json"
	"time"
)

// Subject is a study subject with its weekly hour budget.
type Subject struct {
	Name          string  `json:"nome"`
	HoursPerWeek  int     `json:"horasPorSemana"`
	Color         string  `json:"cor"`
	ProgressHours float64 `json:"progressoHoras"`
}

// SubjectInput is one entry of a subject import. Hours accept numbers
// and numeric strings.
type SubjectInput struct {
	Name         string      `json:"nome"`
	HoursPerWeek json.Number `json:"horasPorSemana"`
}

// DaySubject is the share of a day allotted to one subject.
type DaySubject struct {
	Name  string  `json:"nome"`
	Hours float64 `json:"horas"`
	Color string  `json:"cor"`
}

// DaySlot is one day of a week block. Index 0 is Sunday.
type DaySlot struct {
	Day       int          `json:"dia"`
	Subjects  []DaySubject `json:"materias"`
	Hours     float64      `json:"horas"`
	Completed bool         `json:"isConcluido"`
}

// WeekBlock is a generated Sunday..Saturday scheduling unit.
type WeekBlock struct {
	ID             string     `json:"id"`
	Start          time.Time  `json:"dataInicio"`
	End            time.Time  `json:"dataFim"`
	TotalHours     float64    `json:"totalHorasSemana"`
	CompletedHours float64    `json:"totalHorasConcluidas"`
	Days           [7]DaySlot `json:"dias"`
}

// Cronograma is the study plan: subjects, deadline and generated weeks.
type Cronograma struct {
	Subjects []Subject   `json:"materias"`
	Deadline *time.Time  `json:"dataFim"`
	Weeks    []WeekBlock `json:"semanas"`

	// ColorCursor picks the next palette colour. Not persisted; restored
	// from the subject count on load.
	ColorCursor int `json:"-"`
}

// NewCronograma returns an empty plan.
func NewCronograma() Cronograma {
	return Cronograma{Subjects: []Subject{}, Weeks: []WeekBlock{}}
}

// Week returns the block with the given ID.
func (c *Cronograma) Week(id string) *WeekBlock {
	for i := range c.Weeks {
		if c.Weeks[i].ID == id {
			return &c.Weeks[i]
		}
	}
	return nil
}
