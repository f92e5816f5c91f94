package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecopathway/ecocoach/internal/repository"
	"github.com/ecopathway/ecocoach/internal/service"
	"github.com/ecopathway/ecocoach/internal/validation"
)

const (
	KindHabitInput = "HabitInput"
	KindUserReport = "UserReport"
)

type submitRequest struct {
	UserID  string          `json:"userId"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type habitInputPayload struct {
	Habit string `json:"habit"`
}

type userReportPayload struct {
	HabitID   string `json:"habitId"`
	Completed *bool  `json:"completed"`
	Response  string `json:"response"`
}

type CoachHandler struct {
	coachService *service.CoachService
}

func NewCoachHandler(coachService *service.CoachService) *CoachHandler {
	return &CoachHandler{
		coachService: coachService,
	}
}

// Submit is the single message-submission endpoint: a HabitInput turn carries
// a chat message, a UserReport turn carries a completion report.
func (h *CoachHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = validation.ValidateUserID(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var reply *service.Reply
	switch req.Kind {
	case KindHabitInput:
		var payload habitInputPayload
		err = json.Unmarshal(req.Payload, &payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid HabitInput payload")
			return
		}
		err = validation.ValidateMessage(payload.Habit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		reply, err = h.coachService.HandleMessage(r.Context(), req.UserID, payload.Habit)

	case KindUserReport:
		var payload userReportPayload
		err = json.Unmarshal(req.Payload, &payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid UserReport payload")
			return
		}
		reply, err = h.coachService.HandleReport(r.Context(), req.UserID, payload.HabitID, payload.Completed, payload.Response)

	default:
		writeError(w, http.StatusBadRequest, "unknown kind: expected HabitInput or UserReport")
		return
	}

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// Progress folds a rate-based progress report over the user's active habit
// into the conversation and returns the coach's reaction.
func (h *CoachHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	err := validation.ValidateUserID(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.coachService.HandleProgress(r.Context(), userID)
	if errors.Is(err, repository.ErrHabitNotFound) {
		writeError(w, http.StatusNotFound, "no active habit to report on")
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *CoachHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrProfileConflict) {
		writeError(w, http.StatusConflict, "profile was updated concurrently, please retry")
		return
	}
	slog.Error("coach turn failed", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "something went wrong processing your message")
}
