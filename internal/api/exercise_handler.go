package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ExerciseHandler serves the exercise library and media uploads.
type ExerciseHandler struct {
	trainingService service.TrainingService
	mediaService    service.MediaService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(trainingService service.TrainingService, mediaService service.MediaService) *ExerciseHandler {
	return &ExerciseHandler{
		trainingService: trainingService,
		mediaService:    mediaService,
	}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or editing an exercise.
type ExerciseRequest struct {
	Name         string            `json:"name" binding:"required"`
	Description  string            `json:"description"`
	MuscleGroups []string          `json:"muscleGroups"`                                                        // e.g. ["Chest", "Triceps"]
	Equipment    []string          `json:"equipment"`                                                           // e.g. ["Barbell"]
	Difficulty   domain.Difficulty `json:"difficulty" binding:"omitempty,oneof=Beginner Intermediate Advanced"` // Optional
	MediaURL     string            `json:"mediaUrl" binding:"omitempty,url"`                                    // Optional, validated as URL if provided
}

func (r ExerciseRequest) toData() domain.ExerciseData {
	return domain.ExerciseData{
		Name:         r.Name,
		Description:  r.Description,
		MuscleGroups: r.MuscleGroups,
		Equipment:    r.Equipment,
		Difficulty:   r.Difficulty,
		MediaURL:     r.MediaURL,
	}
}

type MediaUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"` // image/* or video/*
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	MuscleGroups []string          `json:"muscleGroups"`
	Equipment    []string          `json:"equipment,omitempty"`
	Difficulty   domain.Difficulty `json:"difficulty,omitempty"`
	MediaURL     string            `json:"mediaUrl,omitempty"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	muscleGroups := ex.MuscleGroups
	if muscleGroups == nil {
		muscleGroups = []string{}
	}
	return ExerciseResponse{
		ID:           ex.ID,
		Name:         ex.Name,
		Description:  ex.Description,
		MuscleGroups: muscleGroups,
		Equipment:    ex.Equipment,
		Difficulty:   ex.Difficulty,
		MediaURL:     ex.MediaURL,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new library exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.trainingService.CreateExercise(c.Request.Context(), req.toData())
	if err != nil {
		respondServiceError(c, err, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises returns the whole library.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.trainingService.ListExercises(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.trainingService.GetExercise(c.Request.Context(), c.Param("exerciseId"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise edits the library entry only; copies already in workout days keep their values.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.trainingService.UpdateExercise(c.Request.Context(), c.Param("exerciseId"), req.toData())
	if err != nil {
		respondServiceError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes the exercise from the library and from every workout day.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.trainingService.DeleteExerciseFromLibrary(c.Request.Context(), c.Param("exerciseId")); err != nil {
		respondServiceError(c, err, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestMediaUploadURL godoc
// @Summary Get a presigned URL for uploading exercise media
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MediaUploadURLRequest true "Content type of the file"
// @Success 200 {object} service.MediaUpload
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /exercises/media-upload-url [post]
func (h *ExerciseHandler) RequestMediaUploadURL(c *gin.Context) {
	var req MediaUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.mediaService.GenerateMediaUploadURL(c.Request.Context(), req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedMediaType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMediaStorageDisabled):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		default:
			log.Errorf("media upload url: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}
	c.JSON(http.StatusOK, upload)
}

// respondServiceError maps the shared service errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
