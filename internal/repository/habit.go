package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecopathway/ecocoach/internal/model"
)

var ErrHabitNotFound = errors.New("tracked habit not found")

// HabitRepository persists habits registered with the tracker and their daily
// check-in entries.
type HabitRepository interface {
	Upsert(habit *model.TrackedHabit) error
	ByHabitID(userID, habitID string) (*model.TrackedHabit, error)
	ActiveByUser(userID string) (*model.TrackedHabit, error)
	Update(habit *model.TrackedHabit) error
	AddEntry(entry *model.HabitEntry) error
	Entries(habitRowID string) ([]*model.HabitEntry, error)
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

// Upsert registers a habit, or resets it if the same habit is registered
// again (the coach re-proposing a goal restarts its tracking window).
func (r *habitRepository) Upsert(habit *model.TrackedHabit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	now := time.Now()
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}
	habit.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO habits (id, user_id, habit_id, description, target_days, tracking_window_days,
		                    start_date, streak, xp_earned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, habit_id) DO UPDATE
		SET description = excluded.description, target_days = excluded.target_days,
		    tracking_window_days = excluded.tracking_window_days, start_date = excluded.start_date,
		    updated_at = excluded.updated_at
	`, habit.ID, habit.UserID, habit.HabitID, habit.Description, habit.TargetDays,
		habit.TrackingWindow, habit.StartDate, habit.Streak, habit.XPEarned,
		habit.CreatedAt, habit.UpdatedAt)

	return err
}

func (r *habitRepository) ByHabitID(userID, habitID string) (*model.TrackedHabit, error) {
	habit := &model.TrackedHabit{}
	err := r.db.Get(habit, `SELECT * FROM habits WHERE user_id = $1 AND habit_id = $2`, userID, habitID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// ActiveByUser returns the most recently registered habit for a user.
func (r *habitRepository) ActiveByUser(userID string) (*model.TrackedHabit, error) {
	habit := &model.TrackedHabit{}
	err := r.db.Get(habit, `
		SELECT * FROM habits WHERE user_id = $1
		ORDER BY updated_at DESC LIMIT 1
	`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (r *habitRepository) Update(habit *model.TrackedHabit) error {
	habit.UpdatedAt = time.Now()
	result, err := r.db.Exec(`
		UPDATE habits
		SET streak = $1, xp_earned = $2, updated_at = $3
		WHERE id = $4
	`, habit.Streak, habit.XPEarned, habit.UpdatedAt, habit.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) AddEntry(entry *model.HabitEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO habit_entries (id, habit_row_id, day, status, xp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.HabitRow, entry.Day, entry.Status, entry.XP, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add habit entry: %w", err)
	}
	return nil
}

func (r *habitRepository) Entries(habitRowID string) ([]*model.HabitEntry, error) {
	var entries []*model.HabitEntry
	err := r.db.Select(&entries, `
		SELECT * FROM habit_entries WHERE habit_row_id = $1 ORDER BY day ASC, created_at ASC
	`, habitRowID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
