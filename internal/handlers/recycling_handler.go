package handlers

import (
	"net/http"

	"recycle-service/internal/middleware"
	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type RecyclingHandler struct {
	Recycling *services.RecyclingService
}

func NewRecyclingHandler(recycling *services.RecyclingService) *RecyclingHandler {
	return &RecyclingHandler{Recycling: recycling}
}

type CreateProcessRequest struct {
	TransactionId int    `json:"transaction_id" binding:"required"`
	Facility      string `json:"facility"`
	Notes         string `json:"notes"`
}

func (h *RecyclingHandler) Create(c *gin.Context) {
	var req CreateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	process, err := h.Recycling.Create(services.CreateProcessDTO{
		TransactionId: req.TransactionId,
		Facility:      req.Facility,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(process, "recycling process created"))
}

func (h *RecyclingHandler) Get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	process, err := h.Recycling.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(process, "recycling process fetched"))
}

type UpdateProcessRequest struct {
	Status            string   `json:"status"`
	ProcessedQuantity *float64 `json:"processed_quantity"`
	Notes             *string  `json:"notes"`
}

func (h *RecyclingHandler) Update(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	process, err := h.Recycling.UpdateStatus(id, services.UpdateProcessDTO{
		Status:            req.Status,
		ProcessedQuantity: req.ProcessedQuantity,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(process, "recycling process updated"))
}

// ListMine lists processing for the caller's own drop-offs.
func (h *RecyclingHandler) ListMine(c *gin.Context) {
	details, err := h.Recycling.ListByUser(middleware.CurrentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(details, "recycling processes fetched"))
}

func (h *RecyclingHandler) Report(c *gin.Context) {
	rows, err := h.Recycling.Report(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(rows, "recycling report fetched"))
}
