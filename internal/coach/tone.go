package coach

import (
	"strings"

	"github.com/ecopathway/ecocoach/internal/model"
)

var (
	youthWords     = []string{"student", "teen", "school", "college", "uni"}
	elderlyWords   = []string{"retired", "senior", "elderly", "grandparent"}
	skepticWords   = []string{"skeptic", "doubt", "not sure", "pointless", "waste of time"}
	committedWords = []string{"committed", "motivated", "excited", "passionate"}
)

// DeriveTags fills the profile's age-group and motivation buckets from
// keyword heuristics over every free-text answer collected so far. Plain
// substring matching, same as the rest of the classification in this package.
func DeriveTags(profile *model.UserProfile) {
	text := strings.ToLower(strings.Join([]string{
		profile.Commute,
		profile.EcoAwareness,
		profile.GoalsChallenges,
		profile.ExistingHabit,
		profile.Obstacle,
	}, " "))

	if containsAny(text, youthWords) {
		profile.AgeGroup = model.AgeGroupYouth
	} else if containsAny(text, elderlyWords) {
		profile.AgeGroup = model.AgeGroupElderly
	}

	if containsAny(text, skepticWords) {
		profile.MotivationLevel = model.MotivationSkeptic
	} else if containsAny(text, committedWords) {
		profile.MotivationLevel = model.MotivationCommitted
	}
}

// ApplyTone prefixes the message with an opener matching the profile tags.
// The wrapper never changes the message content itself.
func ApplyTone(profile *model.UserProfile, message string) string {
	switch {
	case profile.AgeGroup == model.AgeGroupYouth:
		return "Let's make this fun! " + message
	case profile.AgeGroup == model.AgeGroupElderly:
		return "Whenever you're ready: " + message
	case profile.MotivationLevel == model.MotivationSkeptic:
		return "The numbers back this up. " + message
	default:
		return "🌿 " + message
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
