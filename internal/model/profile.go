package model

import "time"

const (
	AgeGroupYouth   = "youth"
	AgeGroupElderly = "elderly"

	MotivationSkeptic   = "skeptic"
	MotivationCommitted = "committed"
)

// UserProfile holds everything the coach knows about one user: the raw
// onboarding answers, the classification tags derived from them, and the
// gamification state. XP only ever grows; CompletedHabits and Badges never
// shrink.
type UserProfile struct {
	UserID          string    `db:"user_id"`
	Commute         string    `db:"commute"`
	EcoAwareness    string    `db:"eco_awareness"`
	GoalsChallenges string    `db:"goals_challenges"`
	Motivation      int       `db:"motivation"` // self-rated 1-5
	ExistingHabit   string    `db:"existing_habit"`
	Obstacle        string    `db:"obstacle"`
	AgeGroup        string    `db:"age_group"`
	MotivationLevel string    `db:"motivation_level"`
	XP              int       `db:"xp"`
	CompletedHabits []string  `db:"-"` // ordered, membership-tested before append
	Badges          []string  `db:"-"` // set semantics
	Version         int       `db:"version"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// NewUserProfile returns an empty profile for a user seen for the first time.
func NewUserProfile(userID string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:     userID,
		Motivation: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HasCompleted reports whether the goal id is already in the completed set.
func (p *UserProfile) HasCompleted(goalID string) bool {
	for _, id := range p.CompletedHabits {
		if id == goalID {
			return true
		}
	}
	return false
}

// MarkCompleted appends the goal id unless it is already present.
func (p *UserProfile) MarkCompleted(goalID string) {
	if !p.HasCompleted(goalID) {
		p.CompletedHabits = append(p.CompletedHabits, goalID)
	}
}

// HasBadge reports whether the badge was already earned.
func (p *UserProfile) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// AddBadge adds the badge with set semantics; a duplicate award is a no-op.
func (p *UserProfile) AddBadge(badge string) {
	if !p.HasBadge(badge) {
		p.Badges = append(p.Badges, badge)
	}
}
