package model

import "time"

const (
	CheckinCompleted = "completed"
	CheckinPartial   = "partial"
	CheckinMissed    = "missed"
)

// RegisterHabit is the structured command the coach emits when a user commits
// to a goal. It is handed to the habit-tracking collaborator instead of being
// smuggled inside the response text.
type RegisterHabit struct {
	HabitID        string    `json:"habitId"`
	UserID         string    `json:"userId"`
	Description    string    `json:"description"`
	TargetDays     int       `json:"targetDays"`
	TrackingWindow int       `json:"trackingWindowDays"`
	StartDate      time.Time `json:"startDate"`
}

// TrackedHabit is a habit under active tracking.
type TrackedHabit struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	HabitID        string    `db:"habit_id"`
	Description    string    `db:"description"`
	TargetDays     int       `db:"target_days"`
	TrackingWindow int       `db:"tracking_window_days"`
	StartDate      time.Time `db:"start_date"`
	Streak         int       `db:"streak"`
	XPEarned       int       `db:"xp_earned"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// HabitEntry is one day's check-in record for a tracked habit.
type HabitEntry struct {
	ID        string    `db:"id"`
	HabitRow  string    `db:"habit_row_id"`
	Day       string    `db:"day"` // YYYY-MM-DD
	Status    string    `db:"status"`
	XP        int       `db:"xp"`
	CreatedAt time.Time `db:"created_at"`
}
