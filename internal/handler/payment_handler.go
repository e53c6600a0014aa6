package handler

import (
	"net/http"

	"hackpay/internal/middleware"
	"hackpay/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder starts a paid hackathon registration.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req struct {
		HackathonID uint `json:"hackathon_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": err.Error()}})
		return
	}
	userID := middleware.GetUserID(c)
	result, err := h.payments.CreateOrder(c.Request.Context(), userID, req.HackathonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// Verify confirms a checkout callback against the processor.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": err.Error()}})
		return
	}
	result, err := h.payments.VerifyPayment(c.Request.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
