package repository

import (
	"hackpay/internal/models"

	"gorm.io/gorm"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// CreateWithTransaction persists a payout and its paired ledger leg in one
// database transaction. Either both exist afterwards or neither does.
func (r *PayoutRepository) CreateWithTransaction(p *models.Payout, t *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

func (r *PayoutRepository) GetByID(id uint) (*models.Payout, error) {
	var p models.Payout
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayoutRepository) GetByPayoutID(payoutID string) (*models.Payout, error) {
	var p models.Payout
	err := r.db.Where("razorpay_payout_id = ?", payoutID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PayoutFilter narrows List results. Zero values mean no filtering.
type PayoutFilter struct {
	Status      string
	HackathonID uint
	TeamID      uint
	UserID      uint
}

func (r *PayoutRepository) List(f PayoutFilter, page, limit int) ([]models.Payout, int64, error) {
	q := r.db.Model(&models.Payout{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.HackathonID != 0 {
		q = q.Where("hackathon_id = ?", f.HackathonID)
	}
	if f.TeamID != 0 {
		q = q.Where("team_id = ?", f.TeamID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Payout
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}
