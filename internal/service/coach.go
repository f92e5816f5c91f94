package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ecopathway/ecocoach/internal/coach"
	"github.com/ecopathway/ecocoach/internal/model"
	"github.com/ecopathway/ecocoach/internal/repository"
)

// Generator phrases a prompt into text. Implemented by llm.GeminiClient; a
// nil Generator disables generation and the coach always uses canned lines.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Reply is what a turn hands back to the transport.
type Reply struct {
	Text   string `json:"text"`
	Streak int    `json:"streak"`
}

// CoachService orchestrates one coaching turn: load the profile/session pair,
// run the state machine, dispatch any side-effect command to the tracker,
// optionally embellish the response, and persist. Turns for the same user are
// serialized with a per-user mutex; the repository's version check guards
// against writers outside this process.
type CoachService struct {
	profileRepo repository.ProfileRepository
	tracker     *TrackerService
	engine      *coach.Engine
	gen         Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCoachService(
	profileRepo repository.ProfileRepository,
	tracker *TrackerService,
	engine *coach.Engine,
	gen Generator,
) *CoachService {
	return &CoachService{
		profileRepo: profileRepo,
		tracker:     tracker,
		engine:      engine,
		gen:         gen,
		locks:       map[string]*sync.Mutex{},
	}
}

// HandleMessage processes a plain chat message from the user.
func (s *CoachService) HandleMessage(ctx context.Context, userID, text string) (*Reply, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	profile, sess, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	turn := s.engine.HandleTurn(sess, profile, coach.Input{Message: text})

	if turn.RegisterHabit != nil {
		err = s.tracker.Register(*turn.RegisterHabit)
		if err != nil {
			// The conversation already moved on; losing the registration is
			// worse than a stale stage, so surface it.
			return nil, err
		}
	}

	text = turn.Text
	if turn.ProposedGoal != nil {
		text += "\n\n" + s.encouragement(ctx, profile, turn.ProposedGoal)
	}

	err = s.profileRepo.Save(profile, sess)
	if err != nil {
		return nil, err
	}

	return &Reply{Text: text, Streak: s.tracker.Streak(userID)}, nil
}

// HandleReport processes a completion report. When the report carries no
// explicit completed flag, the free-text response is classified instead. The
// resulting tracker feedback re-enters the state machine as input.
func (s *CoachService) HandleReport(ctx context.Context, userID, habitID string, completed *bool, response string) (*Reply, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	profile, sess, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	status := reportStatus(completed, response)
	fb, err := s.tracker.CheckIn(userID, habitID, status)
	if errors.Is(err, repository.ErrHabitNotFound) {
		// Report for a habit the tracker never saw; fold a minimal record so
		// the conversation still reacts instead of rejecting the report.
		fb = syntheticFeedback(habitID, status)
	} else if err != nil {
		return nil, err
	}

	turn := s.engine.HandleTurn(sess, profile, coach.Input{Feedback: fb})

	err = s.profileRepo.Save(profile, sess)
	if err != nil {
		return nil, err
	}

	return &Reply{Text: turn.Text, Streak: fb.Streak}, nil
}

// HandleProgress folds a rate-based progress report over the active habit
// into the conversation.
func (s *CoachService) HandleProgress(ctx context.Context, userID string) (*Reply, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	profile, sess, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	fb, err := s.tracker.Progress(userID)
	if err != nil {
		return nil, err
	}

	turn := s.engine.HandleTurn(sess, profile, coach.Input{Feedback: fb})

	err = s.profileRepo.Save(profile, sess)
	if err != nil {
		return nil, err
	}

	return &Reply{Text: turn.Text, Streak: fb.Streak}, nil
}

func (s *CoachService) loadOrCreate(userID string) (*model.UserProfile, *model.CoachingSession, error) {
	profile, sess, err := s.profileRepo.Load(userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return model.NewUserProfile(userID), model.NewCoachingSession(userID), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return profile, sess, nil
}

// encouragement asks the generator for one personalized line about the
// proposed goal; generation failures degrade to a canned line, never to an
// error the user sees.
func (s *CoachService) encouragement(ctx context.Context, profile *model.UserProfile, goal *model.MicroGoal) string {
	const canned = "I couldn't reach my creative side just now, but trust me — this one's a great place to start!"
	if s.gen == nil {
		return canned
	}

	prompt := fmt.Sprintf(
		"You are a friendly, encouraging, highly practical sustainability coach. "+
			"The user (concern: %q, motivation %d/5) was just proposed this micro-goal for today: %q. "+
			"Reply with a single supportive sentence under 25 words that makes it feel easy to start. "+
			"Address the user directly; no preamble.",
		profile.GoalsChallenges, profile.Motivation, goal.Description,
	)

	line, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("text generation unavailable, using canned line", "error", err)
		return canned
	}
	return line
}

func (s *CoachService) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func reportStatus(completed *bool, response string) string {
	if completed != nil {
		if *completed {
			return model.CheckinCompleted
		}
		return model.CheckinMissed
	}

	switch coach.ClassifyResponse(response) {
	case model.EngagementCompleted:
		return model.CheckinCompleted
	case model.EngagementStruggling:
		return model.CheckinPartial
	default:
		return model.CheckinMissed
	}
}

func syntheticFeedback(habitID, status string) *model.TrackerFeedback {
	fb := &model.TrackerFeedback{HabitID: habitID}
	switch status {
	case model.CheckinCompleted:
		fb.DaysCompleted = 1
		fb.Engagement = model.EngagementCompleted
	case model.CheckinPartial:
		fb.Engagement = model.EngagementStruggling
	default:
		fb.DaysMissed = 1
		fb.Engagement = model.EngagementMissed
	}
	return fb
}
