package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// sessionServiceStub records which service methods were reached.
type sessionServiceStub struct {
	saveDayCalls int
	submitCalls  int
	prevCalls    int
}

func (s *sessionServiceStub) SaveDay(_ context.Context, _, _ string, _ int, _ []domain.ExerciseEntry, _ *float64, _ string) error {
	s.saveDayCalls++
	return nil
}

func (s *sessionServiceStub) SubmitExerciseResult(_ context.Context, _ service.SubmitInput) (*service.SubmitResult, error) {
	s.submitCalls++
	return &service.SubmitResult{}, nil
}

func (s *sessionServiceStub) GetPreviousSession(_ context.Context, _, _ string, _ int, _ domain.ExerciseEntry) (*service.PreviousSession, error) {
	s.prevCalls++
	return &service.PreviousSession{WeekMonday: "2026-01-05"}, nil
}

// newSessionRouter wires the session routes behind a fake auth context.
func newSessionRouter(stub *sessionServiceStub, role domain.Role, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, "user-1")
		c.Set(ContextUserEmailKey, email)
		c.Set(ContextUserRoleKey, role)
	})
	h := NewSessionHandler(stub)
	router.PUT("/sessions/:monday/days/:day", h.SaveDay)
	router.POST("/sessions/:monday/days/:day/results", h.SubmitResult)
	router.POST("/sessions/:monday/days/:day/previous", h.GetPreviousSession)
	return router
}

func TestSessionRoutesRejectAthleteForOtherClient(t *testing.T) {
	stub := &sessionServiceStub{}
	router := newSessionRouter(stub, domain.RoleAthlete, "ana@example.com")

	requests := []struct {
		method, path, body string
	}{
		{http.MethodPut, "/sessions/2026-01-05/days/1",
			`{"clientEmail":"otro@example.com","entries":[{"name":"Sentadilla","circuit":"D","sets":3}]}`},
		{http.MethodPost, "/sessions/2026-01-05/days/1/results",
			`{"clientEmail":"otro@example.com","entry":{"name":"Sentadilla","circuit":"D","sets":3}}`},
		{http.MethodPost, "/sessions/2026-01-05/days/1/previous",
			`{"clientEmail":"otro@example.com","entry":{"name":"Sentadilla","circuit":"D"}}`},
	}
	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.Zero(t, stub.saveDayCalls)
	assert.Zero(t, stub.submitCalls)
	assert.Zero(t, stub.prevCalls)
}

func TestSessionRoutesAllowAthleteForOwnClient(t *testing.T) {
	stub := &sessionServiceStub{}
	router := newSessionRouter(stub, domain.RoleAthlete, "Ana@Example.com")

	body := `{"clientEmail":"ana@example.com","entry":{"name":"Sentadilla","circuit":"D","sets":3}}`
	req := httptest.NewRequest(http.MethodPost, "/sessions/2026-01-05/days/1/results", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Email comparison is case-insensitive, like the stored document keys.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.submitCalls)
}

func TestSessionRoutesAllowTrainerForAnyClient(t *testing.T) {
	stub := &sessionServiceStub{}
	router := newSessionRouter(stub, domain.RoleTrainer, "coach@example.com")

	body := `{"clientEmail":"ana@example.com","entries":[{"name":"Sentadilla","circuit":"D","sets":3}]}`
	req := httptest.NewRequest(http.MethodPut, "/sessions/2026-01-05/days/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.saveDayCalls)
}
