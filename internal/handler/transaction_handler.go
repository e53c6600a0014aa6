package handler

import (
	"net/http"
	"strconv"

	"hackpay/internal/middleware"
	"hackpay/internal/repository"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txnRepo *repository.TransactionRepository
}

func NewTransactionHandler(txnRepo *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{txnRepo: txnRepo}
}

// ListMine returns the caller's ledger view, newest first.
func (h *TransactionHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	txns, total, err := h.txnRepo.ListByUser(middleware.GetUserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "internal_error", "message": "failed to list transactions"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(txns),
		"total":   total,
		"page":    page,
		"data":    txns,
	})
}
