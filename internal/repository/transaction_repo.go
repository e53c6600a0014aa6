package repository

import (
	"hackpay/internal/domain"
	"hackpay/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByOrderID(orderID string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("razorpay_order_id = ?", orderID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ExistsSuccessfulRegistration reports whether the user already holds a
// successful registration charge for the hackathon. Guards double charging.
func (r *TransactionRepository) ExistsSuccessfulRegistration(userID, hackathonID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND hackathon_id = ? AND type = ? AND status IN ?",
			userID, hackathonID, domain.TxnTypeHackathonRegistration,
			[]string{domain.TxnStatusAuthorized, domain.TxnStatusCaptured}).
		Count(&count).Error
	return count > 0, err
}

func (r *TransactionRepository) ListByUser(userID uint, page, limit int) ([]models.Transaction, int64, error) {
	var total int64
	q := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Transaction
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}
