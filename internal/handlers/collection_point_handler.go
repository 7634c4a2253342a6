package handlers

import (
	"net/http"

	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type CollectionPointHandler struct {
	CollectionPoints *services.CollectionPointService
}

func NewCollectionPointHandler(collectionPoints *services.CollectionPointService) *CollectionPointHandler {
	return &CollectionPointHandler{CollectionPoints: collectionPoints}
}

func (h *CollectionPointHandler) List(c *gin.Context) {
	points, err := h.CollectionPoints.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(points, "collection points fetched"))
}

func (h *CollectionPointHandler) Get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	cp, err := h.CollectionPoints.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(cp, "collection point fetched"))
}

type CollectionPointRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Status         string `json:"status"`
	OperatingHours string `json:"operating_hours"`
}

func (h *CollectionPointHandler) Create(c *gin.Context) {
	var req CollectionPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	cp, err := h.CollectionPoints.Create(services.CollectionPointDTO{
		Name:           req.Name,
		Address:        req.Address,
		Status:         req.Status,
		OperatingHours: req.OperatingHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(cp, "collection point created"))
}

func (h *CollectionPointHandler) Update(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req CollectionPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	cp, err := h.CollectionPoints.Update(id, services.CollectionPointDTO{
		Name:           req.Name,
		Address:        req.Address,
		Status:         req.Status,
		OperatingHours: req.OperatingHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(cp, "collection point updated"))
}

func (h *CollectionPointHandler) Delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := h.CollectionPoints.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "collection point deleted"))
}
