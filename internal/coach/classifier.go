package coach

import (
	"strings"

	"github.com/ecopathway/ecocoach/internal/model"
)

// Keyword vocabularies checked in priority order by ClassifyResponse.
var (
	completedWords  = []string{"yes", "completed", "did it", "done", "yep", "yeah"}
	missedWords     = []string{"no", "couldn't", "could not", "nope", "missed", "didn't"}
	strugglingWords = []string{"struggl", "hard", "tricky", "difficult"}
)

// ClassifyResponse maps a free-text completion report to an engagement level.
// Matching is case-insensitive substring search; completed vocabulary wins
// over missed, missed over struggling, and anything unrecognized counts as
// missed.
func ClassifyResponse(raw string) model.EngagementLevel {
	text := strings.ToLower(raw)
	for _, w := range completedWords {
		if strings.Contains(text, w) {
			return model.EngagementCompleted
		}
	}
	for _, w := range missedWords {
		if strings.Contains(text, w) {
			return model.EngagementMissed
		}
	}
	for _, w := range strugglingWords {
		if strings.Contains(text, w) {
			return model.EngagementStruggling
		}
	}
	return model.EngagementMissed
}

// ClassifyRate maps a numeric completion rate in [0,1] to an engagement level.
func ClassifyRate(rate float64) model.EngagementLevel {
	switch {
	case rate >= 0.8:
		return model.EngagementHigh
	case rate >= 0.5:
		return model.EngagementMedium
	default:
		return model.EngagementLow
	}
}
