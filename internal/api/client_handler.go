package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClientHandler serves the client roster and program assignments.
type ClientHandler struct {
	rosterService service.RosterService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(rosterService service.RosterService) *ClientHandler {
	return &ClientHandler{rosterService: rosterService}
}

// --- DTOs ---

// AssignProgramRequest dates use YYYY-MM-DD.
type AssignProgramRequest struct {
	ProgramID string `json:"programId" binding:"required"`
	StartDate string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// AssignmentResponse carries the dates both as stored and formatted DD/MM/YYYY.
type AssignmentResponse struct {
	ClientID         string `json:"clientId"`
	ProgramID        string `json:"programId"`
	StartDate        string `json:"startDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
	StartDateDisplay string `json:"startDateDisplay,omitempty"`
	EndDateDisplay   string `json:"endDateDisplay,omitempty"`
}

type ResolvedAssignmentResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Program    ProgramResponse    `json:"program"`
}

type RosterEntryResponse struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Email      string                      `json:"email"`
	Assignment *ResolvedAssignmentResponse `json:"assignment,omitempty"`
}

func MapAssignmentToResponse(a *domain.ClientTrainingAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ClientID:  a.ClientID,
		ProgramID: a.ProgramID,
	}
	if a.StartDate != nil {
		resp.StartDate = string(*a.StartDate)
		resp.StartDateDisplay = a.StartDate.Display()
	}
	if a.EndDate != nil {
		resp.EndDate = string(*a.EndDate)
		resp.EndDateDisplay = a.EndDate.Display()
	}
	return resp
}

func MapResolvedAssignmentToResponse(r *domain.ResolvedAssignment) *ResolvedAssignmentResponse {
	if r == nil {
		return nil
	}
	return &ResolvedAssignmentResponse{
		Assignment: MapAssignmentToResponse(&r.Assignment),
		Program:    MapProgramToResponse(&r.Program),
	}
}

func MapRosterToResponse(entries []domain.RosterEntry) []RosterEntryResponse {
	responses := make([]RosterEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = RosterEntryResponse{
			ID:         e.Client.ID,
			Name:       e.Client.Name,
			Email:      e.Client.Email,
			Assignment: MapResolvedAssignmentToResponse(e.Assignment),
		}
	}
	return responses
}

// --- Handler Methods ---

func (h *ClientHandler) ListClients(c *gin.Context) {
	entries, err := h.rosterService.ListClients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve clients.")
		return
	}
	c.JSON(http.StatusOK, MapRosterToResponse(entries))
}

// GetAssignment answers 404 when the client has no assignment or its program was deleted.
func (h *ClientHandler) GetAssignment(c *gin.Context) {
	resolved, ok, err := h.rosterService.LookupAssignment(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve assignment.")
		return
	}
	if !ok {
		abortWithError(c, http.StatusNotFound, "No training program assigned")
		return
	}
	c.JSON(http.StatusOK, MapResolvedAssignmentToResponse(resolved))
}

// AssignProgram godoc
// @Summary Assign a training program to a client
// @Description Replaces any previous assignment of the client.
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID (email)"
// @Param assignment body AssignProgramRequest true "Program and optional dates"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} gin.H "Invalid dates or missing program"
// @Router /clients/{clientId}/assignment [put]
func (h *ClientHandler) AssignProgram(c *gin.Context) {
	var req AssignProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	startDate, err := optionalDate(req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := optionalDate(req.EndDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		abortWithError(c, http.StatusBadRequest, "End date cannot be before start date")
		return
	}

	assignment, err := h.rosterService.Assign(c.Request.Context(), c.Param("clientId"), req.ProgramID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err, "Failed to assign program.")
		return
	}
	c.JSON(http.StatusOK, MapAssignmentToResponse(assignment))
}

func (h *ClientHandler) UnassignProgram(c *gin.Context) {
	if err := h.rosterService.Unassign(c.Request.Context(), c.Param("clientId")); err != nil {
		respondServiceError(c, err, "Failed to remove assignment.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClientProfiles returns the sample profiles used as suggestion context.
func (h *ClientHandler) ListClientProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.rosterService.ListClientProfiles(c.Request.Context()))
}

func optionalDate(s string) (*domain.CalendarDate, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseCalendarDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
