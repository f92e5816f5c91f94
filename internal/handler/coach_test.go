package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopathway/ecocoach/internal/coach"
	"github.com/ecopathway/ecocoach/internal/db"
	"github.com/ecopathway/ecocoach/internal/repository"
	"github.com/ecopathway/ecocoach/internal/service"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	tracker := service.NewTrackerService(repository.NewHabitRepository(database))
	coachService := service.NewCoachService(
		repository.NewProfileRepository(database),
		tracker,
		coach.NewEngine(1, 3),
		nil,
	)

	coachHandler := NewCoachHandler(coachService)
	health := NewHealthHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("POST /submit", coachHandler.Submit)
	mux.HandleFunc("GET /progress/{userId}", coachHandler.Progress)
	return mux
}

func doSubmit(t *testing.T, mux *http.ServeMux, body string) (*httptest.ResponseRecorder, *service.Reply) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		return rec, nil
	}
	var reply service.Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	return rec, &reply
}

func submitMessage(t *testing.T, mux *http.ServeMux, userID, msg string) *service.Reply {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"userId":  userID,
		"kind":    KindHabitInput,
		"payload": map[string]string{"habit": msg},
	})
	require.NoError(t, err)

	rec, reply := doSubmit(t, mux, string(payload))
	require.Equal(t, http.StatusOK, rec.Code, "message %q: %s", msg, rec.Body.String())
	return reply
}

func TestHealth(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSubmitConversationEndToEnd(t *testing.T) {
	mux := newTestMux(t)

	reply := submitMessage(t, mux, "u1", "Hello")
	assert.Contains(t, reply.Text, "sustainability coach")
	assert.Equal(t, 0, reply.Streak)

	submitMessage(t, mux, "u1", "I drive everywhere")
	submitMessage(t, mux, "u1", "beginner")

	reply = submitMessage(t, mux, "u1", "I struggle with plastic bags")
	assert.Contains(t, reply.Text, "Bring your own bag")
	assert.Contains(t, reply.Text, "Does this work for you?")

	reply = submitMessage(t, mux, "u1", "Yes!")
	assert.Contains(t, reply.Text, "locked in")

	report, err := json.Marshal(map[string]any{
		"userId":  "u1",
		"kind":    KindUserReport,
		"payload": map[string]any{"completed": true},
	})
	require.NoError(t, err)

	rec, reportReply := doSubmit(t, mux, string(report))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, reportReply.Streak)
	assert.Contains(t, reportReply.Text, "+5 XP")
	assert.Contains(t, reportReply.Text, "Zero Waste Hero")
}

func TestSubmitFreeTextReport(t *testing.T) {
	mux := newTestMux(t)

	submitMessage(t, mux, "u1", "Hello")
	submitMessage(t, mux, "u1", "I walk mostly")
	submitMessage(t, mux, "u1", "curious")
	submitMessage(t, mux, "u1", "shorter showers would be great")
	submitMessage(t, mux, "u1", "sounds good")

	report := `{"userId":"u1","kind":"UserReport","payload":{"response":"nope, I forgot"}}`
	rec, reply := doSubmit(t, mux, report)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, reply.Streak)
	assert.Contains(t, reply.Text, "journey")
}

func TestSubmitRejectsBadRequests(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"userId": "u1",`},
		{"missing userId", `{"kind":"HabitInput","payload":{"habit":"hi"}}`},
		{"blank userId", `{"userId":"   ","kind":"HabitInput","payload":{"habit":"hi"}}`},
		{"unknown kind", `{"userId":"u1","kind":"Telemetry","payload":{}}`},
		{"empty message", `{"userId":"u1","kind":"HabitInput","payload":{"habit":"  "}}`},
		{"non-object payload", `{"userId":"u1","kind":"HabitInput","payload":"hi"}`},
		{"long userId", fmt.Sprintf(`{"userId":%q,"kind":"HabitInput","payload":{"habit":"hi"}}`, strings.Repeat("x", 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doSubmit(t, mux, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestProgressEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/progress/u1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no habit tracked yet")

	submitMessage(t, mux, "u1", "Hello")
	submitMessage(t, mux, "u1", "I drive everywhere")
	submitMessage(t, mux, "u1", "beginner")
	submitMessage(t, mux, "u1", "less plastic please")
	submitMessage(t, mux, "u1", "yes")

	report := `{"userId":"u1","kind":"UserReport","payload":{"completed":true}}`
	recSubmit, _ := doSubmit(t, mux, report)
	require.Equal(t, http.StatusOK, recSubmit.Code)

	req = httptest.NewRequest(http.MethodGet, "/progress/u1", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply service.Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	assert.Equal(t, 1, reply.Streak)
	assert.NotEmpty(t, reply.Text)
}
