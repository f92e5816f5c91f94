package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopathway/ecocoach/internal/model"
)

func TestLevelThresholds(t *testing.T) {
	assert.Equal(t, "Sprout", Level(0))
	assert.Equal(t, "Sprout", Level(49))
	assert.Equal(t, "Sapling", Level(50))
	assert.Equal(t, "Sapling", Level(149))
	assert.Equal(t, "Canopy Hero", Level(150))
	assert.Equal(t, "Forest Guardian", Level(300))
	assert.Equal(t, "Forest Guardian", Level(10000))
}

func TestLevelMonotonic(t *testing.T) {
	rank := map[string]int{
		"Sprout":          0,
		"Sapling":         1,
		"Canopy Hero":     2,
		"Forest Guardian": 3,
	}

	prev := 0
	for xp := 0; xp <= 400; xp++ {
		r, ok := rank[Level(xp)]
		require.True(t, ok, "unknown level at xp=%d", xp)
		assert.GreaterOrEqual(t, r, prev, "level dropped at xp=%d", xp)
		prev = r
	}
}

func TestAwardAccumulatesXP(t *testing.T) {
	profile := model.NewUserProfile("u1")
	goal, err := GoalByID("walk_short_trip")
	require.NoError(t, err)

	res := Award(profile, goal)
	assert.Equal(t, 10, res.XPGained)
	assert.Equal(t, 10, profile.XP)

	// Awarding twice adds both amounts; XP is cumulative.
	Award(profile, goal)
	assert.Equal(t, 20, profile.XP)
}

func TestAwardBadgeIdempotent(t *testing.T) {
	profile := model.NewUserProfile("u1")
	goal, err := GoalByID("shorter_shower")
	require.NoError(t, err)

	res := Award(profile, goal)
	assert.Equal(t, "Water Saver", res.NewBadge)
	assert.Equal(t, []string{"Water Saver"}, profile.Badges)

	res = Award(profile, goal)
	assert.Empty(t, res.NewBadge, "second award must not re-announce the badge")
	assert.Equal(t, []string{"Water Saver"}, profile.Badges, "badges are a set")
}

func TestAwardLevelUpEvent(t *testing.T) {
	profile := model.NewUserProfile("u1")
	profile.XP = 45
	goal, err := GoalByID("plant_based_meal")
	require.NoError(t, err)

	res := Award(profile, goal)
	assert.Equal(t, "Sapling", res.NewLevel, "crossing 50 XP must fire a level-up")

	res = Award(profile, goal)
	assert.Empty(t, res.NewLevel, "no level-up without crossing a threshold")
}

func TestAwardNoBadgeGoal(t *testing.T) {
	profile := model.NewUserProfile("u1")
	goal, err := GoalByID("air_dry_laundry")
	require.NoError(t, err)

	res := Award(profile, goal)
	assert.Empty(t, res.NewBadge)
	assert.Empty(t, profile.Badges)
}
