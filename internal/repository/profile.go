package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ecopathway/ecocoach/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileConflict = errors.New("profile was modified concurrently")
)

// ProfileRepository persists the profile/session pair for a user. Save is
// guarded by an optimistic version check so concurrent turns for the same
// user can never silently overwrite each other.
type ProfileRepository interface {
	Load(userID string) (*model.UserProfile, *model.CoachingSession, error)
	Save(profile *model.UserProfile, session *model.CoachingSession) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// profileRow mirrors the profiles table; slice fields are stored as JSON text.
type profileRow struct {
	UserID          string    `db:"user_id"`
	Commute         string    `db:"commute"`
	EcoAwareness    string    `db:"eco_awareness"`
	GoalsChallenges string    `db:"goals_challenges"`
	Motivation      int       `db:"motivation"`
	ExistingHabit   string    `db:"existing_habit"`
	Obstacle        string    `db:"obstacle"`
	AgeGroup        string    `db:"age_group"`
	MotivationLevel string    `db:"motivation_level"`
	XP              int       `db:"xp"`
	CompletedHabits string    `db:"completed_habits"`
	Badges          string    `db:"badges"`
	Version         int       `db:"version"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type sessionRow struct {
	UserID        string    `db:"user_id"`
	Stage         string    `db:"stage"`
	CurrentGoalID string    `db:"current_goal_id"`
	Feedback      string    `db:"feedback"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *profileRepository) Load(userID string) (*model.UserProfile, *model.CoachingSession, error) {
	var prow profileRow
	err := r.db.Get(&prow, `SELECT * FROM profiles WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var srow sessionRow
	err = r.db.Get(&srow, `SELECT * FROM sessions WHERE user_id = $1`, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, nil, err
	}

	profile, err := prow.toModel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile %s: %w", userID, err)
	}

	session := model.NewCoachingSession(userID)
	if srow.UserID != "" {
		session.Stage = srow.Stage
		session.CurrentGoalID = srow.CurrentGoalID
		if srow.Feedback != "" {
			err = json.Unmarshal([]byte(srow.Feedback), &session.Feedback)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to decode session %s: %w", userID, err)
			}
		}
	}

	return profile, session, nil
}

func (r *profileRepository) Save(profile *model.UserProfile, session *model.CoachingSession) error {
	prow, err := rowFromProfile(profile)
	if err != nil {
		return err
	}
	feedback, err := json.Marshal(session.Feedback)
	if err != nil {
		return err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if profile.Version == 0 {
		_, err = tx.Exec(`
			INSERT INTO profiles (user_id, commute, eco_awareness, goals_challenges, motivation,
			                      existing_habit, obstacle, age_group, motivation_level, xp,
			                      completed_habits, badges, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, prow.UserID, prow.Commute, prow.EcoAwareness, prow.GoalsChallenges, prow.Motivation,
			prow.ExistingHabit, prow.Obstacle, prow.AgeGroup, prow.MotivationLevel, prow.XP,
			prow.CompletedHabits, prow.Badges, 1, prow.CreatedAt, now)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		profile.Version = 1
	} else {
		result, err := tx.Exec(`
			UPDATE profiles
			SET commute = $1, eco_awareness = $2, goals_challenges = $3, motivation = $4,
			    existing_habit = $5, obstacle = $6, age_group = $7, motivation_level = $8,
			    xp = $9, completed_habits = $10, badges = $11, version = $12, updated_at = $13
			WHERE user_id = $14 AND version = $15
		`, prow.Commute, prow.EcoAwareness, prow.GoalsChallenges, prow.Motivation,
			prow.ExistingHabit, prow.Obstacle, prow.AgeGroup, prow.MotivationLevel,
			prow.XP, prow.CompletedHabits, prow.Badges, profile.Version+1, now,
			prow.UserID, profile.Version)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrProfileConflict
		}
		profile.Version++
	}

	_, err = tx.Exec(`
		INSERT INTO sessions (user_id, stage, current_goal_id, feedback, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET stage = excluded.stage, current_goal_id = excluded.current_goal_id,
		    feedback = excluded.feedback, updated_at = excluded.updated_at
	`, session.UserID, session.Stage, session.CurrentGoalID, string(feedback), now)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	profile.UpdatedAt = now
	return tx.Commit()
}

func rowFromProfile(p *model.UserProfile) (*profileRow, error) {
	completed, err := json.Marshal(p.CompletedHabits)
	if err != nil {
		return nil, err
	}
	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return nil, err
	}

	return &profileRow{
		UserID:          p.UserID,
		Commute:         p.Commute,
		EcoAwareness:    p.EcoAwareness,
		GoalsChallenges: p.GoalsChallenges,
		Motivation:      p.Motivation,
		ExistingHabit:   p.ExistingHabit,
		Obstacle:        p.Obstacle,
		AgeGroup:        p.AgeGroup,
		MotivationLevel: p.MotivationLevel,
		XP:              p.XP,
		CompletedHabits: string(completed),
		Badges:          string(badges),
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}

func (row *profileRow) toModel() (*model.UserProfile, error) {
	p := &model.UserProfile{
		UserID:          row.UserID,
		Commute:         row.Commute,
		EcoAwareness:    row.EcoAwareness,
		GoalsChallenges: row.GoalsChallenges,
		Motivation:      row.Motivation,
		ExistingHabit:   row.ExistingHabit,
		Obstacle:        row.Obstacle,
		AgeGroup:        row.AgeGroup,
		MotivationLevel: row.MotivationLevel,
		XP:              row.XP,
		Version:         row.Version,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.CompletedHabits != "" {
		if err := json.Unmarshal([]byte(row.CompletedHabits), &p.CompletedHabits); err != nil {
			return nil, err
		}
	}
	if row.Badges != "" {
		if err := json.Unmarshal([]byte(row.Badges), &p.Badges); err != nil {
			return nil, err
		}
	}
	return p, nil
}
