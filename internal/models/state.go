package models

// Profile holds the user profile shown on the profile screen and included in
// exports.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Theme is the persisted theme preference.
type Theme struct {
	Dark bool `json:"dark"`
}

// State is everything the application persists: the habit list, the sparse
// completion log, and the auxiliary collections (cached stats, profile,
// theme preference).
type State struct {
	Habits      []Habit       `json:"habits"`
	Completions CompletionLog `json:"completions"`
	Stats       *UserStats    `json:"stats,omitempty"`
	Profile     *Profile      `json:"profile,omitempty"`
	Theme       *Theme        `json:"theme,omitempty"`
}

// NewState returns an empty state with initialized collections.
func NewState() State {
	return State{
		Habits:      []Habit{},
		Completions: make(CompletionLog),
	}
}

// Normalize ensures collections are non-nil after deserialization.
func (s *State) Normalize() {
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Completions == nil {
		s.Completions = make(CompletionLog)
	}
}

// Habit looks up a habit by id. The second return value reports whether it
// was found.
func (s *State) Habit(habitID string) (*Habit, bool) {
	for i := range s.Habits {
		if s.Habits[i].ID == habitID {
			return &s.Habits[i], true
		}
	}
	return nil, false
}
