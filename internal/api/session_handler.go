package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/service"
	"motionfit/routine-app/internal/textnorm"

	"github.com/gin-gonic/gin"
)

// SessionHandler holds the session recording service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request Structs ---

type SaveDayRequest struct {
	ClientEmail string                 `json:"clientEmail" binding:"required,email"`
	Entries     []domain.ExerciseEntry `json:"entries" binding:"required"`
	RPE         *float64               `json:"rpe,omitempty"`
	CoachName   string                 `json:"coachName,omitempty"`
}

type SubmitResultRequest struct {
	ClientEmail string               `json:"clientEmail" binding:"required,email"`
	Entry       domain.ExerciseEntry `json:"entry" binding:"required"`
	RPE         *float64             `json:"rpe,omitempty"`
	CoachName   string               `json:"coachName,omitempty"`
}

type PreviousSessionRequest struct {
	ClientEmail string               `json:"clientEmail" binding:"required,email"`
	Entry       domain.ExerciseEntry `json:"entry" binding:"required"`
}

// --- Handler Methods ---

// SaveDay persists a whole day of logged entries plus the session RPE.
func (h *SessionHandler) SaveDay(c *gin.Context) {
	monday, day, ok := sessionPathParams(c)
	if !ok {
		return
	}

	var req SaveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if !authorizeClientEmail(c, req.ClientEmail) {
		return
	}

	err := h.sessionService.SaveDay(c.Request.Context(), req.ClientEmail, monday, day, req.Entries, req.RPE, req.CoachName)
	if err != nil {
		if errors.Is(err, service.ErrDayOutOfRange) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save day")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// SubmitResult saves one logged exercise and propagates its weight delta to
// later weeks.
func (h *SessionHandler) SubmitResult(c *gin.Context) {
	monday, day, ok := sessionPathParams(c)
	if !ok {
		return
	}

	var req SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if !authorizeClientEmail(c, req.ClientEmail) {
		return
	}

	result, err := h.sessionService.SubmitExerciseResult(c.Request.Context(), service.SubmitInput{
		ClientEmail: req.ClientEmail,
		WeekMonday:  monday,
		Day:         day,
		Entry:       req.Entry,
		RPE:         req.RPE,
		CoachName:   req.CoachName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDayOutOfRange), errors.Is(err, service.ErrEntryNameless):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit result")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPreviousSession returns the same exercise as last performed in an
// earlier week, or 404 when there is none.
func (h *SessionHandler) GetPreviousSession(c *gin.Context) {
	monday, day, ok := sessionPathParams(c)
	if !ok {
		return
	}

	var req PreviousSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if !authorizeClientEmail(c, req.ClientEmail) {
		return
	}

	prev, err := h.sessionService.GetPreviousSession(c.Request.Context(), req.ClientEmail, monday, day, req.Entry)
	if err != nil {
		if errors.Is(err, service.ErrDayOutOfRange) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to look up previous session")
		return
	}
	if prev == nil {
		abortWithError(c, http.StatusNotFound, "no previous session for this exercise")
		return
	}
	c.JSON(http.StatusOK, prev)
}

// authorizeClientEmail enforces that athletes only touch their own routines.
// Trainers and admins may address any client. Aborts with 403 and returns
// false on a mismatch.
func authorizeClientEmail(c *gin.Context, clientEmail string) bool {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return false
	}
	if role != domain.RoleAthlete {
		return true
	}
	email, err := getUserEmailFromContext(c)
	if err != nil || email == "" || textnorm.Email(email) != textnorm.Email(clientEmail) {
		abortWithError(c, http.StatusForbidden, "Access denied: athletes can only access their own routines")
		return false
	}
	return true
}

// sessionPathParams reads the :monday and :day path parameters.
func sessionPathParams(c *gin.Context) (monday string, day int, ok bool) {
	monday = c.Param("monday")
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 || day > domain.MaxDays {
		abortWithError(c, http.StatusBadRequest, "day must be a number between 1 and 5")
		return "", 0, false
	}
	return monday, day, true
}
