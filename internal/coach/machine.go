package coach

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecopathway/ecocoach/internal/model"
)

// Input is one incoming turn: either a plain user message or a tracker
// feedback report. Feedback takes precedence when both are set.
type Input struct {
	Message  string
	Feedback *model.TrackerFeedback
}

// Turn is the outcome of one turn: the response text plus an optional
// structured side-effect command for the habit-tracking collaborator and the
// goal that was proposed, if any, so callers can enrich the phrasing.
type Turn struct {
	Text          string
	RegisterHabit *model.RegisterHabit
	ProposedGoal  *model.MicroGoal
}

// Engine drives the coaching conversation. It is deterministic and free of
// I/O: each HandleTurn call mutates the given session and profile in place
// and returns the response. One session/profile pair must not be handled
// concurrently; callers serialize turns per user.
type Engine struct {
	targetDays     int
	trackingWindow int
	now            func() time.Time
}

func NewEngine(targetDays, trackingWindow int) *Engine {
	return &Engine{
		targetDays:     targetDays,
		trackingWindow: trackingWindow,
		now:            time.Now,
	}
}

var affirmWords = []string{"yes", "sounds good", "i'm in", "im in", "ready"}

var alternativeWords = []string{"alternative", "different", "another"}

var reflectionWords = []string{"how", "feel", "easy", "hard", "struggl"}

// quickReplies are exact-phrase shortcuts answered without touching the
// conversation stage.
var quickReplies = map[string]string{
	"tell me a green fact":       "Did you know that recycling one aluminum can saves enough energy to power a TV for three hours? Every little bit helps! 🌱",
	"what can i recycle today?":  "Focus on clean paper, cardboard, plastic bottles (with caps), and aluminum cans today. Check local guidelines for specifics! ♻️",
	"eco tip":                    "Quick eco tip: unplug electronics when not in use. They draw 'phantom' power even when switched off! 💡",
	"why is climate change bad?": "Climate change drives more extreme weather, rising sea levels, and pressure on ecosystems, threatening health and habitats worldwide. 🌍",
	"inspire me":                 "Every small action you take creates a ripple effect. Your effort matters, and together we can build a greener future! ✨",
}

// HandleTurn routes one incoming turn. Tracker feedback is always processed
// first regardless of stage and leaves the session in daily_checkin; plain
// messages are dispatched on the current stage. An unknown stage resets the
// conversation instead of failing.
func (e *Engine) HandleTurn(sess *model.CoachingSession, profile *model.UserProfile, in Input) Turn {
	if in.Feedback != nil {
		return e.handleFeedback(sess, profile, *in.Feedback)
	}

	if reply, ok := quickReplies[strings.ToLower(strings.TrimSpace(in.Message))]; ok {
		return Turn{Text: reply}
	}

	var turn Turn
	switch sess.Stage {
	case model.StageInitial:
		turn = e.handleInitial(sess, profile)
	case model.StageOnboardingQ1:
		turn = e.handleOnboardingQ1(sess, profile, in.Message)
	case model.StageOnboardingQ2:
		turn = e.handleOnboardingQ2(sess, profile, in.Message)
	case model.StageOnboardingQ3:
		turn = e.handleOnboardingQ3(sess, profile, in.Message)
	case model.StageGoalProposed:
		turn = e.handleGoalProposed(sess, profile, in.Message)
	case model.StageGoalRenegotiate:
		turn = e.handleRenegotiate(sess, profile, in.Message)
	case model.StageDailyCheckin:
		turn = e.handleDailyCheckin(sess, in.Message)
	case model.StageAllGoalsCompleted:
		turn = Turn{Text: "You've already tackled every goal in my book! Want to revisit a past goal, or go deeper on one you loved?"}
	default:
		sess.Stage = model.StageInitial
		turn = Turn{Text: "Let's start over — tell me a bit about yourself and we'll find a new green habit together."}
	}

	turn.Text = ApplyTone(profile, turn.Text)
	return turn
}

func (e *Engine) handleFeedback(sess *model.CoachingSession, profile *model.UserProfile, fb model.TrackerFeedback) Turn {
	if fb.Engagement == "" {
		fb.Engagement = model.EngagementMissed
	}
	sess.RecordFeedback(fb)
	sess.Stage = model.StageDailyCheckin

	var text string
	switch fb.Engagement {
	case model.EngagementCompleted:
		if fb.DaysCompleted > 0 {
			text = e.celebrateCompletion(sess, profile, fb)
		} else {
			text = "Logged! Tell me when you've had a chance to give it a go."
		}
	case model.EngagementMissed:
		text = "No worries at all — sustainability is a journey, not a test. What got in the way today? We can shrink the goal if that would help."
	case model.EngagementStruggling:
		text = "Thanks for being honest — that's how habits actually stick. What's the specific obstacle making this one hard?"
	default:
		// high/medium/low rate reports just fold into history.
		text = "Progress noted — I'll keep that in mind for our next check-in."
	}

	return Turn{Text: ApplyTone(profile, text)}
}

func (e *Engine) celebrateCompletion(sess *model.CoachingSession, profile *model.UserProfile, fb model.TrackerFeedback) string {
	goal, err := GoalByID(fb.HabitID)
	if err != nil && sess.CurrentGoalID != "" {
		goal, err = GoalByID(sess.CurrentGoalID)
	}
	if err != nil {
		return "Fantastic work completing your goal! How did it feel?"
	}

	res := Award(profile, goal)
	profile.MarkCompleted(goal.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Fantastic! You completed \"%s\" and earned +%d XP. 🎉", goal.Description, res.XPGained)
	if fb.Streak > 1 {
		fmt.Fprintf(&b, " That's a %d-day streak!", fb.Streak)
	}
	if res.NewLevel != "" {
		fmt.Fprintf(&b, " LEVEL UP — you're now a %s! 🌟", res.NewLevel)
	}
	if res.NewBadge != "" {
		fmt.Fprintf(&b, " New badge earned: %s! 🎖️", res.NewBadge)
	}
	b.WriteString(" What felt different about today?")
	return b.String()
}

func (e *Engine) handleInitial(sess *model.CoachingSession, profile *model.UserProfile) Turn {
	// Tone is picked once here from whatever profile hints already exist.
	DeriveTags(profile)
	sess.Stage = model.StageOnboardingQ1

	ideas := []string{
		"I drive to nearby places",
		"I use plastic bags regularly",
		"I leave lights on unnecessarily",
		"I buy bottled water daily",
		"I take long showers",
	}
	return Turn{Text: "Welcome! I'm your sustainability coach. 🌱 First, how would you describe your current commute or lifestyle? For example:\n- " +
		strings.Join(ideas, "\n- ")}
}

func (e *Engine) handleOnboardingQ1(sess *model.CoachingSession, profile *model.UserProfile, msg string) Turn {
	profile.Commute = msg
	sess.Stage = model.StageOnboardingQ2
	return Turn{Text: "Got it. How familiar are you with environmental topics — beginner, curious, or already deep in it?"}
}

func (e *Engine) handleOnboardingQ2(sess *model.CoachingSession, profile *model.UserProfile, msg string) Turn {
	profile.EcoAwareness = msg
	sess.Stage = model.StageOnboardingQ3
	return Turn{Text: "Last one: what green goals or challenges are on your mind? Anything you'd love to change?"}
}

func (e *Engine) handleOnboardingQ3(sess *model.CoachingSession, profile *model.UserProfile, msg string) Turn {
	profile.GoalsChallenges = msg
	DeriveTags(profile)

	preference := profile.Commute + " " + profile.GoalsChallenges
	goal, ok := SelectNext(profile, preference)
	if !ok {
		sess.Stage = model.StageAllGoalsCompleted
		return Turn{Text: "Incredible — you've already tackled every micro-goal I know! Want to revisit one, or go deeper on a habit you loved?"}
	}

	sess.CurrentGoalID = goal.ID
	sess.Stage = model.StageGoalProposed
	return Turn{
		Text:         proposalText(goal),
		ProposedGoal: goal,
	}
}

func (e *Engine) handleGoalProposed(sess *model.CoachingSession, profile *model.UserProfile, msg string) Turn {
	if !containsAny(strings.ToLower(msg), affirmWords) {
		sess.Stage = model.StageGoalRenegotiate
		return Turn{Text: "No problem — this should feel doable, not like a chore. Would you like an alternative goal, or shall we talk through what would fit better?"}
	}

	goal, err := GoalByID(sess.CurrentGoalID)
	if sess.CurrentGoalID == "" || err != nil {
		// Confirmed with no active goal: recoverable, start over.
		sess.Stage = model.StageInitial
		sess.CurrentGoalID = ""
		return Turn{Text: "Hmm, I lost track of which goal we were discussing — let's start fresh. Tell me a bit about yourself!"}
	}

	sess.Stage = model.StageDailyCheckin
	return Turn{
		Text: fmt.Sprintf("Brilliant! \"%s\" is locked in for today. I'll check in to see how it went — you've got this! 💪", goal.Description),
		RegisterHabit: &model.RegisterHabit{
			HabitID:        goal.ID,
			UserID:         sess.UserID,
			Description:    goal.Description,
			TargetDays:     e.targetDays,
			TrackingWindow: e.trackingWindow,
			StartDate:      e.now(),
		},
	}
}

func (e *Engine) handleRenegotiate(sess *model.CoachingSession, profile *model.UserProfile, msg string) Turn {
	if containsAny(strings.ToLower(msg), alternativeWords) {
		alt, ok := SelectAlternative(profile, sess.CurrentGoalID)
		if ok {
			sess.CurrentGoalID = alt.ID
			sess.Stage = model.StageGoalProposed
			return Turn{
				Text:         "How about this instead?\n\n" + proposalText(alt),
				ProposedGoal: alt,
			}
		}
		sess.Stage = model.StageOnboardingQ3
		return Turn{Text: "I'm out of ready-made alternatives — tell me more about what interests you and I'll find a better fit."}
	}

	sess.Stage = model.StageOnboardingQ3
	return Turn{Text: "Fair enough. What matters most to you about living greener? Knowing that helps me suggest something that actually fits your life."}
}

func (e *Engine) handleDailyCheckin(sess *model.CoachingSession, msg string) Turn {
	goal, err := GoalByID(sess.CurrentGoalID)

	if containsAny(strings.ToLower(msg), reflectionWords) {
		if err == nil {
			return Turn{Text: fmt.Sprintf("Good question to sit with. How has \"%s\" felt so far — easier or harder than you expected?", goal.Description)}
		}
		return Turn{Text: "How has your goal felt so far — easier or harder than you expected?"}
	}

	if err == nil {
		return Turn{Text: fmt.Sprintf("Your current goal is \"%s\". How did it go today — completed, missed, or somewhere in between?", goal.Description)}
	}
	return Turn{Text: "How did your goal go today — completed, missed, or somewhere in between?"}
}

func proposalText(goal *model.MicroGoal) string {
	return fmt.Sprintf("Here's today's micro-goal for you:\n\n✨ %s\n\nWhy it matters: %s\n\nDoes this work for you?", goal.Description, goal.Rationale)
}
