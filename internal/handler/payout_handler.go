package handler

import (
	"net/http"
	"strconv"

	"hackpay/internal/middleware"
	"hackpay/internal/repository"
	"hackpay/internal/service"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payouts    *service.PayoutService
	payoutRepo *repository.PayoutRepository
}

func NewPayoutHandler(payouts *service.PayoutService, payoutRepo *repository.PayoutRepository) *PayoutHandler {
	return &PayoutHandler{payouts: payouts, payoutRepo: payoutRepo}
}

// Create disburses prize/refund money to a team's leader. Admin only.
func (h *PayoutHandler) Create(c *gin.Context) {
	var req struct {
		HackathonID uint   `json:"hackathon_id" binding:"required"`
		TeamID      uint   `json:"team_id" binding:"required"`
		AmountPaise int64  `json:"amount_paise" binding:"required,min=1"`
		Type        string `json:"type" binding:"required"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": err.Error()}})
		return
	}
	result, err := h.payouts.Create(c.Request.Context(), service.CreatePayoutInput{
		HackathonID: req.HackathonID,
		TeamID:      req.TeamID,
		AmountPaise: req.AmountPaise,
		Type:        req.Type,
		Notes:       req.Notes,
		CreatedBy:   middleware.GetUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// List returns payouts with optional status/hackathon/team/user filters.
func (h *PayoutHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	filter := repository.PayoutFilter{Status: c.Query("status")}
	if v, err := strconv.ParseUint(c.Query("hackathon"), 10, 32); err == nil {
		filter.HackathonID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("team"), 10, 32); err == nil {
		filter.TeamID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("user"), 10, 32); err == nil {
		filter.UserID = uint(v)
	}
	payouts, total, err := h.payoutRepo.List(filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "internal_error", "message": "failed to list payouts"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(payouts),
		"total":   total,
		"page":    page,
		"data":    payouts,
	})
}

func (h *PayoutHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": "invalid payout id"}})
		return
	}
	payout, err := h.payoutRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"kind": "not_found", "message": "payout not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payout})
}
