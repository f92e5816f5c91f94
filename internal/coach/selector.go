package coach

import (
	"strings"

	"github.com/ecopathway/ecocoach/internal/model"
)

// categoryRules maps stated-concern keywords to catalog categories. Checked
// in order; commute comes last because commute words ("drive", "car") show up
// as filler in almost every lifestyle answer, while the other keywords only
// appear when the user actually names that concern.
var categoryRules = []struct {
	Category string
	Keywords []string
}{
	{model.CategoryReduceReuse, []string{"plastic", "bags"}},
	{model.CategoryWaterConservation, []string{"water", "shower"}},
	{model.CategoryEnergySaving, []string{"energy", "lights", "electricity", "laundry", "dryer"}},
	{model.CategoryFoodWaste, []string{"food waste", "compost"}},
	{model.CategoryFoodChoices, []string{"diet", "meat", "plant"}},
	{model.CategoryCommute, []string{"car", "drive"}},
}

// matchCategory returns the first rule whose keyword appears in the text.
func matchCategory(text string) (string, bool) {
	text = strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

// SelectNext picks the next uncompleted micro-goal for the profile. A category
// keyword in the preference text steers the pick; otherwise (or when the
// matched category is exhausted) the catalog is scanned in definition order.
// ok is false only when every catalog goal is already completed.
func SelectNext(profile *model.UserProfile, preference string) (goal *model.MicroGoal, ok bool) {
	if category, found := matchCategory(preference); found {
		for i := range catalog {
			if catalog[i].Category == category && !profile.HasCompleted(catalog[i].ID) {
				return &catalog[i], true
			}
		}
	}
	return firstUncompleted(profile, "")
}

// SelectAlternative picks the next uncompleted goal other than excludeID,
// used when the user rejects a proposal and asks for something different.
func SelectAlternative(profile *model.UserProfile, excludeID string) (*model.MicroGoal, bool) {
	return firstUncompleted(profile, excludeID)
}

func firstUncompleted(profile *model.UserProfile, excludeID string) (*model.MicroGoal, bool) {
	for i := range catalog {
		if catalog[i].ID == excludeID {
			continue
		}
		if !profile.HasCompleted(catalog[i].ID) {
			return &catalog[i], true
		}
	}
	return nil, false
}
