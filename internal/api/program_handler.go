package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves the program -> workout day -> exercise editor.
// Mutations that address a missing program or day answer 204 No Content.
type ProgramHandler struct {
	trainingService service.TrainingService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(trainingService service.TrainingService) *ProgramHandler {
	return &ProgramHandler{trainingService: trainingService}
}

// --- DTOs ---

type CreateProgramRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateWorkoutDayRequest struct {
	Name string `json:"name" binding:"required"`
}

type AttachExercisesRequest struct {
	ExerciseIDs []string `json:"exerciseIds" binding:"required,min=1,dive,required"`
}

type WorkoutDayResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Exercises []ExerciseResponse `json:"exercises"`
}

type ProgramResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	WorkoutDays []WorkoutDayResponse `json:"workoutDays"`
}

func MapWorkoutDayToResponse(day *domain.WorkoutDay) WorkoutDayResponse {
	return WorkoutDayResponse{
		ID:        day.ID,
		Name:      day.Name,
		Exercises: MapExercisesToResponse(day.Exercises),
	}
}

func MapProgramToResponse(p *domain.TrainingProgram) ProgramResponse {
	days := make([]WorkoutDayResponse, len(p.WorkoutDays))
	for i := range p.WorkoutDays {
		days[i] = MapWorkoutDayToResponse(&p.WorkoutDays[i])
	}
	return ProgramResponse{
		ID:          p.ID,
		Name:        p.Name,
		WorkoutDays: days,
	}
}

func MapProgramsToResponse(programs []domain.TrainingProgram) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i := range programs {
		responses[i] = MapProgramToResponse(&programs[i])
	}
	return responses
}

// --- Programs ---

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.trainingService.ListPrograms(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve programs.")
		return
	}
	c.JSON(http.StatusOK, MapProgramsToResponse(programs))
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.trainingService.GetProgram(c.Request.Context(), c.Param("programId"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve program.")
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// CreateProgram godoc
// @Summary Create a training program
// @Description Name must be at least 3 characters long.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program name"
// @Success 201 {object} ProgramResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	program, err := h.trainingService.AddProgram(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to create program.")
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	if err := h.trainingService.DeleteProgram(c.Request.Context(), c.Param("programId")); err != nil {
		respondServiceError(c, err, "Failed to delete program.")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Workout days ---

func (h *ProgramHandler) CreateWorkoutDay(c *gin.Context) {
	var req CreateWorkoutDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.trainingService.AddWorkoutDay(c.Request.Context(), c.Param("programId"), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to add workout day.")
		return
	}
	if day == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutDayToResponse(day))
}

func (h *ProgramHandler) DeleteWorkoutDay(c *gin.Context) {
	if err := h.trainingService.DeleteWorkoutDay(c.Request.Context(), c.Param("programId"), c.Param("dayId")); err != nil {
		respondServiceError(c, err, "Failed to delete workout day.")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Day exercises ---

// AttachExercises copies library exercises into the day; already present ones are skipped.
func (h *ProgramHandler) AttachExercises(c *gin.Context) {
	var req AttachExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.trainingService.AttachLibraryExercises(c.Request.Context(), c.Param("programId"), c.Param("dayId"), req.ExerciseIDs)
	if err != nil {
		respondServiceError(c, err, "Failed to add exercises to workout day.")
		return
	}
	if day == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDayToResponse(day))
}

// CreateAndAttachExercise creates a library exercise and adds it to the day in one step.
func (h *ProgramHandler) CreateAndAttachExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.trainingService.CreateAndAttachExercise(c.Request.Context(), c.Param("programId"), c.Param("dayId"), req.toData())
	if err != nil {
		respondServiceError(c, err, "Failed to create exercise.")
		return
	}
	if exercise == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

func (h *ProgramHandler) RemoveExerciseFromDay(c *gin.Context) {
	err := h.trainingService.RemoveExerciseFromDay(c.Request.Context(), c.Param("programId"), c.Param("dayId"), c.Param("exerciseId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove exercise from workout day.")
		return
	}
	c.Status(http.StatusNoContent)
}
