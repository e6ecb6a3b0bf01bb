package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlannerHandler holds the block authoring service dependency.
type PlannerHandler struct {
	plannerService service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// --- Request/Response Structs ---

// PreviewRequest carries the authored baseline: day number -> entry list.
type PreviewRequest struct {
	WeekCount int                              `json:"weekCount" binding:"required,min=1,max=52"`
	Days      map[string][]domain.ExerciseEntry `json:"days" binding:"required"`
}

type CreateBlockRequest struct {
	TrainerEmail string                            `json:"trainerEmail" binding:"required,email"`
	ClientName   string                            `json:"clientName" binding:"required"`
	ClientEmail  string                            `json:"clientEmail" binding:"required,email"`
	StartDate    string                            `json:"startDate" binding:"required"`
	WeekCount    int                               `json:"weekCount" binding:"required,min=1,max=52"`
	Days         map[string][]domain.ExerciseEntry `json:"days" binding:"required"`
}

// --- Handler Methods ---

// PreviewBlock returns the fully-progressed entries for every week and day
// without persisting anything.
func (h *PlannerHandler) PreviewBlock(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	days, err := parseDays(req.Days)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := h.plannerService.PreviewBlock(days, req.WeekCount)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": preview})
}

// CreateBlock commits a block, writing one week document per non-empty week.
func (h *PlannerHandler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	days, err := parseDays(req.Days)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.plannerService.CreateBlock(c.Request.Context(), service.BlockInput{
		TrainerEmail: req.TrainerEmail,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		StartDate:    startDate,
		WeekCount:    req.WeekCount,
		Days:         days,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidBlock) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create block")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListWeeks lists every stored week for a client, oldest first.
func (h *PlannerHandler) ListWeeks(c *gin.Context) {
	clientEmail := c.Query("clientEmail")
	if clientEmail == "" {
		abortWithError(c, http.StatusBadRequest, "clientEmail query parameter is required")
		return
	}

	weeks, err := h.plannerService.ListWeeks(c.Request.Context(), clientEmail)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list weeks")
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// LoadWeek returns one stored week with all days normalized, for display or
// as the base of a new block.
func (h *PlannerHandler) LoadWeek(c *gin.Context) {
	clientEmail := c.Query("clientEmail")
	monday := c.Param("monday")
	if clientEmail == "" {
		abortWithError(c, http.StatusBadRequest, "clientEmail query parameter is required")
		return
	}

	week, err := h.plannerService.LoadWeek(c.Request.Context(), clientEmail, monday)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load week")
		return
	}
	c.JSON(http.StatusOK, week)
}

// GetBlockPosition reports where a stored week sits inside its block.
func (h *PlannerHandler) GetBlockPosition(c *gin.Context) {
	clientEmail := c.Query("clientEmail")
	monday := c.Param("monday")
	if clientEmail == "" {
		abortWithError(c, http.StatusBadRequest, "clientEmail query parameter is required")
		return
	}

	pos, err := h.plannerService.GetBlockPosition(c.Request.Context(), clientEmail, monday)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) || errors.Is(err, service.ErrBlockNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve block position")
		return
	}
	c.JSON(http.StatusOK, pos)
}

// parseDays converts the JSON day map ("1".."5") to numeric day keys.
func parseDays(raw map[string][]domain.ExerciseEntry) (map[int][]domain.ExerciseEntry, error) {
	days := make(map[int][]domain.ExerciseEntry, len(raw))
	for k, entries := range raw {
		day, err := strconv.Atoi(k)
		if err != nil || day < 1 || day > domain.MaxDays {
			return nil, fmt.Errorf("invalid day key %q", k)
		}
		days[day] = entries
	}
	return days, nil
}
