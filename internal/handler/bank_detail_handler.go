package handler

import (
	"net/http"
	"strconv"

	"hackpay/internal/middleware"
	"hackpay/internal/models"
	"hackpay/internal/repository"

	"github.com/gin-gonic/gin"
)

type BankDetailHandler struct {
	bankRepo *repository.BankDetailRepository
}

func NewBankDetailHandler(bankRepo *repository.BankDetailRepository) *BankDetailHandler {
	return &BankDetailHandler{bankRepo: bankRepo}
}

func (h *BankDetailHandler) Create(c *gin.Context) {
	var req struct {
		AccountHolderName string `json:"account_holder_name" binding:"required"`
		AccountNumber     string `json:"account_number" binding:"required,min=6,max=34"`
		IFSCCode          string `json:"ifsc_code" binding:"required,len=11"`
		BankName          string `json:"bank_name" binding:"required"`
		Branch            string `json:"branch"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": err.Error()}})
		return
	}
	d := &models.BankDetail{
		UserID:            middleware.GetUserID(c),
		AccountHolderName: req.AccountHolderName,
		AccountNumber:     req.AccountNumber,
		IFSCCode:          req.IFSCCode,
		BankName:          req.BankName,
		Branch:            req.Branch,
	}
	if err := h.bankRepo.Create(d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "internal_error", "message": "failed to save bank details"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": d})
}

func (h *BankDetailHandler) List(c *gin.Context) {
	details, err := h.bankRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "internal_error", "message": "failed to list bank details"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}

func (h *BankDetailHandler) SetPrimary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": "invalid id"}})
		return
	}
	if err := h.bankRepo.SetPrimary(middleware.GetUserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"kind": "not_found", "message": "bank detail not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify marks a destination verified. Admin only.
func (h *BankDetailHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"kind": "validation_error", "message": "invalid id"}})
		return
	}
	if _, err := h.bankRepo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"kind": "not_found", "message": "bank detail not found"}})
		return
	}
	if err := h.bankRepo.MarkVerified(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "internal_error", "message": "failed to verify bank details"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
