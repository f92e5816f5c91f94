package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopathway/ecocoach/internal/model"
	"github.com/ecopathway/ecocoach/internal/repository"
)

func newTestTracker(t *testing.T) *TrackerService {
	t.Helper()
	return NewTrackerService(repository.NewHabitRepository(newTestDB(t)))
}

func registerTestHabit(t *testing.T, tracker *TrackerService, userID, habitID string) {
	t.Helper()
	require.NoError(t, tracker.Register(model.RegisterHabit{
		HabitID:        habitID,
		UserID:         userID,
		Description:    "Take a shorter shower today",
		TargetDays:     1,
		TrackingWindow: 3,
		StartDate:      time.Now(),
	}))
}

func TestCheckInOutcomes(t *testing.T) {
	tracker := newTestTracker(t)
	registerTestHabit(t, tracker, "u1", "shorter_shower")

	// Completed: streak grows, full XP, counts toward the rate.
	fb, err := tracker.CheckIn("u1", "", model.CheckinCompleted)
	require.NoError(t, err)
	assert.Equal(t, "shorter_shower", fb.HabitID)
	assert.Equal(t, 1, fb.Streak)
	assert.Equal(t, 1, fb.DaysCompleted)
	assert.Equal(t, 0, fb.DaysMissed)
	assert.Equal(t, model.EngagementCompleted, fb.Engagement)
	assert.InDelta(t, 1.0, fb.CompletionRate, 0.001)

	// Partial: streak unchanged, still counts toward the rate.
	fb, err = tracker.CheckIn("u1", "shorter_shower", model.CheckinPartial)
	require.NoError(t, err)
	assert.Equal(t, 1, fb.Streak)
	assert.Equal(t, 2, fb.DaysCompleted)
	assert.Equal(t, model.EngagementStruggling, fb.Engagement)
	assert.InDelta(t, 1.0, fb.CompletionRate, 0.001)

	// Missed: streak resets.
	fb, err = tracker.CheckIn("u1", "", model.CheckinMissed)
	require.NoError(t, err)
	assert.Equal(t, 0, fb.Streak)
	assert.Equal(t, 2, fb.DaysCompleted)
	assert.Equal(t, 1, fb.DaysMissed)
	assert.Equal(t, model.EngagementMissed, fb.Engagement)
	assert.InDelta(t, 2.0/3.0, fb.CompletionRate, 0.001)
}

func TestCheckInUnknownStatusTreatedAsMissed(t *testing.T) {
	tracker := newTestTracker(t)
	registerTestHabit(t, tracker, "u1", "shorter_shower")

	fb, err := tracker.CheckIn("u1", "", "shrug")
	require.NoError(t, err)
	assert.Equal(t, model.EngagementMissed, fb.Engagement)
	assert.Equal(t, 0, fb.Streak)
	assert.Equal(t, 1, fb.DaysMissed)
}

func TestCheckInWithoutHabit(t *testing.T) {
	tracker := newTestTracker(t)

	_, err := tracker.CheckIn("u1", "", model.CheckinCompleted)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)

	_, err = tracker.CheckIn("u1", "shorter_shower", model.CheckinCompleted)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
}

func TestProgressClassifiesRate(t *testing.T) {
	tracker := newTestTracker(t)
	registerTestHabit(t, tracker, "u1", "shorter_shower")

	for _, status := range []string{model.CheckinCompleted, model.CheckinCompleted, model.CheckinMissed} {
		_, err := tracker.CheckIn("u1", "", status)
		require.NoError(t, err)
	}

	fb, err := tracker.Progress("u1")
	require.NoError(t, err)
	assert.Equal(t, "shorter_shower", fb.HabitID)
	assert.Equal(t, 2, fb.DaysCompleted)
	assert.Equal(t, 1, fb.DaysMissed)
	assert.InDelta(t, 2.0/3.0, fb.CompletionRate, 0.001)
	assert.Equal(t, model.EngagementMedium, fb.Engagement)
}

func TestProgressWithoutHabit(t *testing.T) {
	tracker := newTestTracker(t)
	_, err := tracker.Progress("u1")
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
}

func TestStreak(t *testing.T) {
	tracker := newTestTracker(t)
	assert.Equal(t, 0, tracker.Streak("u1"), "no habit yet")

	registerTestHabit(t, tracker, "u1", "shorter_shower")
	_, err := tracker.CheckIn("u1", "", model.CheckinCompleted)
	require.NoError(t, err)
	_, err = tracker.CheckIn("u1", "", model.CheckinCompleted)
	require.NoError(t, err)

	assert.Equal(t, 2, tracker.Streak("u1"))
}
