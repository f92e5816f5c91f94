package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ecopathway/ecocoach/internal/coach"
	"github.com/ecopathway/ecocoach/internal/model"
	"github.com/ecopathway/ecocoach/internal/repository"
)

// XP per daily check-in outcome.
const (
	xpCompleted = 10
	xpPartial   = 5
)

// TrackerService is the habit-tracking collaborator: it registers habits the
// coach confirms, records daily check-ins, and turns them into feedback
// reports that flow back into the coaching conversation.
type TrackerService struct {
	habitRepo repository.HabitRepository
}

func NewTrackerService(habitRepo repository.HabitRepository) *TrackerService {
	return &TrackerService{habitRepo: habitRepo}
}

// Register stores (or restarts) a habit from the coach's RegisterHabit command.
func (s *TrackerService) Register(cmd model.RegisterHabit) error {
	habit := &model.TrackedHabit{
		UserID:         cmd.UserID,
		HabitID:        cmd.HabitID,
		Description:    cmd.Description,
		TargetDays:     cmd.TargetDays,
		TrackingWindow: cmd.TrackingWindow,
		StartDate:      cmd.StartDate,
	}

	err := s.habitRepo.Upsert(habit)
	if err != nil {
		return fmt.Errorf("failed to register habit: %w", err)
	}

	slog.Info("habit registered", "user_id", cmd.UserID, "habit_id", cmd.HabitID)
	return nil
}

// CheckIn records today's outcome for a habit and builds the feedback report
// the coach folds into the conversation. A completed day extends the streak,
// a missed day resets it, and a partial day leaves it untouched but still
// earns half XP and counts toward the completion rate.
func (s *TrackerService) CheckIn(userID, habitID, status string) (*model.TrackerFeedback, error) {
	var habit *model.TrackedHabit
	var err error
	if habitID != "" {
		habit, err = s.habitRepo.ByHabitID(userID, habitID)
	} else {
		habit, err = s.habitRepo.ActiveByUser(userID)
	}
	if err != nil {
		return nil, err
	}

	var xp int
	switch status {
	case model.CheckinCompleted:
		xp = xpCompleted
		habit.Streak++
	case model.CheckinPartial:
		xp = xpPartial
	default:
		status = model.CheckinMissed
		habit.Streak = 0
	}

	entry := &model.HabitEntry{
		HabitRow: habit.ID,
		Day:      time.Now().Format("2006-01-02"),
		Status:   status,
		XP:       xp,
	}
	err = s.habitRepo.AddEntry(entry)
	if err != nil {
		return nil, err
	}

	habit.XPEarned += xp
	err = s.habitRepo.Update(habit)
	if err != nil {
		return nil, err
	}

	completed, missed, rate, err := s.completionStats(habit.ID)
	if err != nil {
		return nil, err
	}

	fb := &model.TrackerFeedback{
		HabitID:        habit.HabitID,
		DaysCompleted:  completed,
		DaysMissed:     missed,
		Streak:         habit.Streak,
		Engagement:     engagementForStatus(status),
		CompletionRate: rate,
	}

	slog.Info("habit check-in",
		"user_id", userID,
		"habit_id", habit.HabitID,
		"status", status,
		"streak", habit.Streak,
		"completion_rate", rate,
	)
	return fb, nil
}

// Progress builds a rate-based report over the active habit's history, the
// periodic analytics view of the same data CheckIn reports per day.
func (s *TrackerService) Progress(userID string) (*model.TrackerFeedback, error) {
	habit, err := s.habitRepo.ActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	completed, missed, rate, err := s.completionStats(habit.ID)
	if err != nil {
		return nil, err
	}

	return &model.TrackerFeedback{
		HabitID:        habit.HabitID,
		DaysCompleted:  completed,
		DaysMissed:     missed,
		Streak:         habit.Streak,
		Engagement:     coach.ClassifyRate(rate),
		CompletionRate: rate,
	}, nil
}

// Streak reports the current streak of the user's active habit; 0 when
// nothing is tracked yet.
func (s *TrackerService) Streak(userID string) int {
	habit, err := s.habitRepo.ActiveByUser(userID)
	if err != nil {
		return 0
	}
	return habit.Streak
}

// completionStats counts completed-or-partial days against the full history.
func (s *TrackerService) completionStats(habitRowID string) (completed, missed int, rate float64, err error) {
	entries, err := s.habitRepo.Entries(habitRowID)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, e := range entries {
		if e.Status == model.CheckinCompleted || e.Status == model.CheckinPartial {
			completed++
		} else {
			missed++
		}
	}
	if len(entries) > 0 {
		rate = float64(completed) / float64(len(entries))
	}
	return completed, missed, rate, nil
}

func engagementForStatus(status string) model.EngagementLevel {
	switch status {
	case model.CheckinCompleted:
		return model.EngagementCompleted
	case model.CheckinPartial:
		return model.EngagementStruggling
	default:
		return model.EngagementMissed
	}
}
