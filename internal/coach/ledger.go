package coach

import "github.com/ecopathway/ecocoach/internal/model"

// levelThresholds maps minimum XP to level name, in ascending order.
var levelThresholds = []struct {
	XP   int
	Name string
}{
	{0, "Sprout"},
	{50, "Sapling"},
	{150, "Canopy Hero"},
	{300, "Forest Guardian"},
}

// Level returns the level name for an XP total: the name attached to the
// highest threshold not exceeding xp.
func Level(xp int) string {
	name := levelThresholds[0].Name
	for _, t := range levelThresholds {
		if xp >= t.XP {
			name = t.Name
		}
	}
	return name
}

// AwardResult describes what an award changed. NewLevel is set only when the
// award crossed a level threshold; NewBadge only when a badge was earned for
// the first time.
type AwardResult struct {
	XPGained int
	NewLevel string
	NewBadge string
}

// Award adds the goal's XP to the profile and computes level-up and badge
// events. Awarding a badge twice is a no-op after the first; XP is cumulative.
func Award(profile *model.UserProfile, goal *model.MicroGoal) AwardResult {
	before := Level(profile.XP)
	profile.XP += goal.XP
	after := Level(profile.XP)

	res := AwardResult{XPGained: goal.XP}
	if after != before {
		res.NewLevel = after
	}
	if goal.Badge != "" && !profile.HasBadge(goal.Badge) {
		profile.AddBadge(goal.Badge)
		res.NewBadge = goal.Badge
	}
	return res
}
