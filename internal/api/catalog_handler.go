package api

import (
	"errors"
	"fmt"
	"net/http"

	"motionfit/routine-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the exercise library service dependency.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type UpsertExerciseRequest struct {
	Name            string `json:"name" binding:"required"`
	MuscleGroup     string `json:"muscleGroup,omitempty"`
	MovementPattern string `json:"movementPattern,omitempty"`
	ImplementID     string `json:"implementId,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
}

// UpsertExercise creates or replaces a library exercise.
func (h *CatalogHandler) UpsertExercise(c *gin.Context) {
	var req UpsertExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.catalogService.UpsertExercise(c.Request.Context(),
		req.Name, req.MuscleGroup, req.MovementPattern, req.ImplementID, req.VideoURL)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// ListExercises returns the full exercise library.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	exercises, err := h.catalogService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// ResolveExercise looks up a library exercise by name.
func (h *CatalogHandler) ResolveExercise(c *gin.Context) {
	exercise, err := h.catalogService.ResolveExercise(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve exercise")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// GetWeightOptions returns the selectable weights for an exercise tied to an
// implement. Free-weight exercises return an empty list.
func (h *CatalogHandler) GetWeightOptions(c *gin.Context) {
	weights, err := h.catalogService.WeightOptions(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrImplementNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get weight options")
		return
	}
	if weights == nil {
		weights = []float64{}
	}
	c.JSON(http.StatusOK, gin.H{"weights": weights})
}

// GetDemoVideo returns a viewable URL for the exercise's demo video.
func (h *CatalogHandler) GetDemoVideo(c *gin.Context) {
	url, err := h.catalogService.DemoVideoURL(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get demo video")
		return
	}
	if url == "" {
		abortWithError(c, http.StatusNotFound, "no demo video for this exercise")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type VideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// GetVideoUploadURL returns a presigned PUT URL for the exercise's demo video.
func (h *CatalogHandler) GetVideoUploadURL(c *gin.Context) {
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	url, err := h.catalogService.VideoUploadURL(c.Request.Context(), c.Param("name"), req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": url})
}

// ListImplements returns every implement and its weight set.
func (h *CatalogHandler) ListImplements(c *gin.Context) {
	implements, err := h.catalogService.ListImplements(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list implements")
		return
	}
	c.JSON(http.StatusOK, implements)
}
