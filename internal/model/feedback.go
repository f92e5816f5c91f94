package model

// EngagementLevel classifies how a user performed against a goal. Free-text
// reports yield completed/missed/struggling; numeric completion rates yield
// high/medium/low.
type EngagementLevel string

const (
	EngagementCompleted  EngagementLevel = "completed"
	EngagementMissed     EngagementLevel = "missed"
	EngagementStruggling EngagementLevel = "struggling"
	EngagementHigh       EngagementLevel = "high"
	EngagementMedium     EngagementLevel = "medium"
	EngagementLow        EngagementLevel = "low"
)

// TrackerFeedback is a single progress report from the habit tracker. It is
// folded into the coaching session exactly once and then discarded.
type TrackerFeedback struct {
	HabitID        string          `json:"habitId"`
	DaysCompleted  int             `json:"daysCompleted"`
	DaysMissed     int             `json:"daysMissed"`
	Streak         int             `json:"streak"`
	Engagement     EngagementLevel `json:"engagementLevel"`
	CompletionRate float64         `json:"completionRate"`
}
