package handlers

import (
	"net/http"

	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	Statistics *services.StatisticsService
}

func NewStatisticsHandler(statistics *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{Statistics: statistics}
}

func (h *StatisticsHandler) Transactions(c *gin.Context) {
	stats, err := h.Statistics.TransactionStatistics(
		c.Query("period"), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(stats, "transaction statistics fetched"))
}
