package handlers

import (
	"net/http"

	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WasteTypeHandler struct {
	WasteTypes *services.WasteTypeService
}

func NewWasteTypeHandler(wasteTypes *services.WasteTypeService) *WasteTypeHandler {
	return &WasteTypeHandler{WasteTypes: wasteTypes}
}

func (h *WasteTypeHandler) List(c *gin.Context) {
	types, err := h.WasteTypes.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(types, "waste types fetched"))
}

func (h *WasteTypeHandler) Get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	wt, err := h.WasteTypes.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(wt, "waste type fetched"))
}

type WasteTypeRequest struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Recyclable           *bool    `json:"recyclable"`
	HandlingInstructions string   `json:"handling_instructions"`
	UnitPrice            *float64 `json:"unit_price"`
}

func (h *WasteTypeHandler) Create(c *gin.Context) {
	var req WasteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	wt, err := h.WasteTypes.Create(services.WasteTypeDTO{
		Name:                 req.Name,
		Description:          req.Description,
		Recyclable:           req.Recyclable,
		HandlingInstructions: req.HandlingInstructions,
		UnitPrice:            req.UnitPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(wt, "waste type created"))
}

func (h *WasteTypeHandler) Update(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req WasteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	wt, err := h.WasteTypes.Update(id, services.WasteTypeDTO{
		Name:                 req.Name,
		Description:          req.Description,
		Recyclable:           req.Recyclable,
		HandlingInstructions: req.HandlingInstructions,
		UnitPrice:            req.UnitPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(wt, "waste type updated"))
}

func (h *WasteTypeHandler) Delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := h.WasteTypes.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "waste type deleted"))
}
