package handlers

import (
	"net/http"

	"recycle-service/internal/middleware"
	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
}

func NewTransactionHandler(transactions *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

type CreateTransactionRequest struct {
	CollectionPointId int     `json:"collection_point_id" binding:"required"`
	WasteTypeId       int     `json:"waste_type_id" binding:"required"`
	Quantity          float64 `json:"quantity" binding:"required,gt=0"`
	Unit              string  `json:"unit"`
	ProofImageUrl     *string `json:"proof_image_url"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.Create(services.CreateTransactionDTO{
		UserId:            middleware.CurrentUserId(c),
		CollectionPointId: req.CollectionPointId,
		WasteTypeId:       req.WasteTypeId,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		ProofImageUrl:     req.ProofImageUrl,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(trx, "transaction created"))
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	detail, err := h.Transactions.GetDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(detail, "transaction fetched"))
}

func (h *TransactionHandler) List(c *gin.Context) {
	result, err := h.Transactions.List(services.ListTransactionsDTO{
		Status:            c.Query("status"),
		UserId:            queryInt(c, "user_id"),
		CollectionPointId: queryInt(c, "collection_point_id"),
		WasteTypeId:       queryInt(c, "waste_type_id"),
		DateFrom:          c.Query("date_from"),
		DateTo:            c.Query("date_to"),
		Page:              queryInt(c, "page"),
		Limit:             queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMine lists the caller's own transactions, same filters as List.
func (h *TransactionHandler) ListMine(c *gin.Context) {
	result, err := h.Transactions.List(services.ListTransactionsDTO{
		Status:            c.Query("status"),
		UserId:            middleware.CurrentUserId(c),
		CollectionPointId: queryInt(c, "collection_point_id"),
		WasteTypeId:       queryInt(c, "waste_type_id"),
		DateFrom:          c.Query("date_from"),
		DateTo:            c.Query("date_to"),
		Page:              queryInt(c, "page"),
		Limit:             queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type UpdateTransactionRequest struct {
	CollectionPointId *int     `json:"collection_point_id"`
	WasteTypeId       *int     `json:"waste_type_id"`
	Quantity          *float64 `json:"quantity"`
	Unit              *string  `json:"unit"`
	ProofImageUrl     *string  `json:"proof_image_url"`
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.UpdateContent(id, middleware.CurrentUserId(c), services.UpdateTransactionDTO{
		CollectionPointId: req.CollectionPointId,
		WasteTypeId:       req.WasteTypeId,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		ProofImageUrl:     req.ProofImageUrl,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "transaction updated"))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := h.Transactions.Delete(id, middleware.CurrentUserId(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "transaction deleted"))
}

func (h *TransactionHandler) History(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	history, err := h.Transactions.ListHistory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(history, "transaction history fetched"))
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	trx, err := h.Transactions.ApplyStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "transaction status updated"))
}
