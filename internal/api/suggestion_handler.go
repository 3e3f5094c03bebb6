package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type SuggestionHandler struct {
	suggestionService service.SuggestionService
}

func NewSuggestionHandler(suggestionService service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

type SuggestExercisesRequest struct {
	MuscleGroup        string `json:"muscleGroup" binding:"required"`
	EquipmentAvailable string `json:"equipmentAvailable"`
	ExerciseCount      *int   `json:"exerciseCount" binding:"omitempty,min=1,max=20"` // Defaults to 3
}

// SuggestExercises godoc
// @Summary Ask the AI for exercise suggestions
// @Description A malformed AI answer yields an empty list; a failed AI call yields 502.
// @Tags Suggestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SuggestExercisesRequest true "Muscle group focus, equipment and count"
// @Success 200 {object} domain.SuggestionResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 429 {object} gin.H "Rate limited"
// @Failure 502 {object} gin.H "AI service failure"
// @Router /suggestions/exercises [post]
func (h *SuggestionHandler) SuggestExercises(c *gin.Context) {
	var req SuggestExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.suggestionService.SuggestExercises(c.Request.Context(), domain.SuggestionRequest{
		MuscleGroup:        req.MuscleGroup,
		EquipmentAvailable: req.EquipmentAvailable,
		ExerciseCount:      req.ExerciseCount,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("exercise suggestions: %s", err)
		abortWithError(c, http.StatusBadGateway, "Failed to get exercise suggestions. Please try again.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
