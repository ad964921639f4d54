package models

// LegacyHabit is the older flat habit shape kept for consumers that have not
// migrated to the checklist model. CompletedDates lists the days on which
// every active todo of the habit was completed.
type LegacyHabit struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Streak         int      `json:"streak"`
	CompletedDates []string `json:"completedDates"`
	Target         int      `json:"target"`
	Progress       int      `json:"progress"`
	CreatedAt      string   `json:"createdAt"`
}
