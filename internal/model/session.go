package model

// Coaching stages. The conversation moves strictly through onboarding into
// goal negotiation and then settles in daily_checkin; all_goals_completed is
// reached when the catalog is exhausted.
const (
	StageInitial           = "initial"
	StageOnboardingQ1      = "onboarding_q1"
	StageOnboardingQ2      = "onboarding_q2"
	StageOnboardingQ3      = "onboarding_q3"
	StageGoalProposed      = "goal_proposed"
	StageGoalRenegotiate   = "goal_proposed_renegotiate"
	StageDailyCheckin      = "daily_checkin"
	StageAllGoalsCompleted = "all_goals_completed"
)

// CoachingSession is the per-conversation state threaded through every turn.
// CurrentGoalID is empty when no goal is proposed or active. Feedback keeps
// the most recent tracker report per habit id.
type CoachingSession struct {
	UserID        string
	Stage         string
	CurrentGoalID string
	Feedback      map[string]TrackerFeedback
}

// NewCoachingSession returns a session positioned at the first turn.
func NewCoachingSession(userID string) *CoachingSession {
	return &CoachingSession{
		UserID:   userID,
		Stage:    StageInitial,
		Feedback: map[string]TrackerFeedback{},
	}
}

// RecordFeedback stores the most recent tracker report for its habit.
func (s *CoachingSession) RecordFeedback(fb TrackerFeedback) {
	if s.Feedback == nil {
		s.Feedback = map[string]TrackerFeedback{}
	}
	s.Feedback[fb.HabitID] = fb
}
