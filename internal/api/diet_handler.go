package api

import (
	"alcyxob/coach-studio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DietHandler struct {
	dietService service.DietService
}

func NewDietHandler(dietService service.DietService) *DietHandler {
	return &DietHandler{dietService: dietService}
}

type CreateDietItemRequest struct {
	FoodName string `json:"foodName" binding:"required"`
	Quantity string `json:"quantity" binding:"required"` // e.g. "150g"
}

func (h *DietHandler) ListDietItems(c *gin.Context) {
	items, err := h.dietService.ListDietItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve diet items.")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *DietHandler) CreateDietItem(c *gin.Context) {
	var req CreateDietItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.dietService.AddDietItem(c.Request.Context(), req.FoodName, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to add diet item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *DietHandler) DeleteDietItem(c *gin.Context) {
	if err := h.dietService.DeleteDietItem(c.Request.Context(), c.Param("itemId")); err != nil {
		respondServiceError(c, err, "Failed to delete diet item.")
		return
	}
	c.Status(http.StatusNoContent)
}
