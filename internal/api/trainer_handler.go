package api

import (
	"errors"
	"fmt"
	"net/http"

	"motionfit/routine-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer roster service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

type AddAthleteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddAthleteByEmail adds an existing athlete account to the trainer's roster.
func (h *TrainerHandler) AddAthleteByEmail(c *gin.Context) {
	trainerID, err := trainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req AddAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	athlete, err := h.trainerService.AddAthleteByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAthleteNotRole), errors.Is(err, service.ErrAthleteAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add athlete")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(athlete))
}

// GetManagedAthletes lists the athletes on the trainer's roster.
func (h *TrainerHandler) GetManagedAthletes(c *gin.Context) {
	trainerID, err := trainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	athletes, err := h.trainerService.GetManagedAthletes(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list athletes")
		return
	}

	resp := make([]UserResponse, 0, len(athletes))
	for i := range athletes {
		resp = append(resp, MapUserToResponse(&athletes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// trainerIDFromContext reads the authenticated user's ObjectID from the JWT
// context.
func trainerIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID in token")
	}
	return id, nil
}
