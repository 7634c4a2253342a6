package handlers

import (
	"net/http"

	"recycle-service/internal/middleware"
	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	Rewards *services.RewardService
}

func NewRewardHandler(rewards *services.RewardService) *RewardHandler {
	return &RewardHandler{Rewards: rewards}
}

// ListMine returns the caller's rewards with the running point total.
func (h *RewardHandler) ListMine(c *gin.Context) {
	result, err := h.Rewards.ListUserRewards(services.ListUserRewardsDTO{
		UserId:   middleware.CurrentUserId(c),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		FromDate: c.Query("date_from"),
		ToDate:   c.Query("date_to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RewardHandler) ListUser(c *gin.Context) {
	userId, ok := pathId(c, "userId")
	if !ok {
		return
	}

	result, err := h.Rewards.ListUserRewards(services.ListUserRewardsDTO{
		UserId:   userId,
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		FromDate: c.Query("date_from"),
		ToDate:   c.Query("date_to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TotalMine returns just the caller's lifetime point total.
func (h *RewardHandler) TotalMine(c *gin.Context) {
	total, err := h.Rewards.TotalPoints(middleware.CurrentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"total_points": total}, "total points fetched"))
}

func (h *RewardHandler) Get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	detail, err := h.Rewards.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(detail, "reward fetched"))
}

type CreateRewardRequest struct {
	UserId        int  `json:"user_id" binding:"required"`
	Points        int  `json:"points" binding:"required,gte=0"`
	TransactionId *int `json:"transaction_id"`
}

func (h *RewardHandler) Create(c *gin.Context) {
	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	reward, err := h.Rewards.CreateManual(services.ManualRewardDTO{
		UserId:        req.UserId,
		Points:        req.Points,
		TransactionId: req.TransactionId,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(reward, "reward created"))
}

type AdjustPointsRequest struct {
	Points *int `json:"points" binding:"required"`
}

func (h *RewardHandler) AdjustPoints(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	reward, err := h.Rewards.AdjustPoints(id, *req.Points)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(reward, "reward updated"))
}

func (h *RewardHandler) Delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := h.Rewards.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "reward deleted"))
}

// Reprocess re-runs accrual for a completed transaction whose reward is
// missing. Safe to call repeatedly.
func (h *RewardHandler) Reprocess(c *gin.Context) {
	transactionId, ok := pathId(c, "transactionId")
	if !ok {
		return
	}

	reward, err := h.Rewards.Reprocess(transactionId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(reward, "reward accrual processed"))
}

func (h *RewardHandler) Rankings(c *gin.Context) {
	entries, err := h.Rewards.Rankings(queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(entries, "rankings fetched"))
}

// StatisticsMine buckets the caller's earned points by period.
func (h *RewardHandler) StatisticsMine(c *gin.Context) {
	buckets, err := h.Rewards.Statistics(middleware.CurrentUserId(c), c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(buckets, "reward statistics fetched"))
}
