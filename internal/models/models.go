package models

// Themes accepted by Settings.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultDailyGoal is used when no valid goal is stored.
const DefaultDailyGoal = 10

type Settings struct {
	Theme string `json:"theme"`
}

// AppState is the whole persisted application state. It is passed
// explicitly to every engine operation.
type AppState struct {
	Questions  []*Question  `json:"quizData"`
	Flashcards []*Flashcard `json:"flashcardData"`
	Stats      Stats        `json:"stats"`
	DailyGoal  int          `json:"dailyGoal"`
	Cronograma Cronograma   `json:"cronograma"`
	Settings   Settings     `json:"settings"`
}

// NewAppState returns the empty default state.
func NewAppState() *AppState {
	return &AppState{
		Questions:  []*Question{},
		Flashcards: []*Flashcard{},
		Stats:      NewStats(),
		DailyGoal:  DefaultDailyGoal,
		Cronograma: NewCronograma(),
		Settings:   Settings{Theme: ThemeDark},
	}
}

// Question returns the question with the given ID.
func (s *AppState) Question(id string) *Question {
	for _, q := range s.Questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Flashcard returns the flashcard with the given ID.
func (s *AppState) Flashcard(id string) *Flashcard {
	for _, c := range s.Flashcards {
		if c.ID == id {
			return c
		}
	}
	return nil
}
