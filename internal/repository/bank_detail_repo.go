package repository

import (
	"errors"

	"hackpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoPrimaryDestination = errors.New("no verified primary bank destination")

type BankDetailRepository struct {
	db *gorm.DB
}

func NewBankDetailRepository(db *gorm.DB) *BankDetailRepository {
	return &BankDetailRepository{db: db}
}

// Create inserts a destination. The first destination a user adds becomes
// primary; the single-primary invariant is kept inside one transaction.
func (r *BankDetailRepository) Create(d *models.BankDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BankDetail{}).
			Where("user_id = ?", d.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			d.IsPrimary = true
		}
		return tx.Create(d).Error
	})
}

func (r *BankDetailRepository) GetByID(id uint) (*models.BankDetail, error) {
	var d models.BankDetail
	err := r.db.First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BankDetailRepository) ListByUser(userID uint) ([]models.BankDetail, error) {
	var out []models.BankDetail
	err := r.db.Where("user_id = ?", userID).Order("is_primary DESC, created_at ASC").Find(&out).Error
	return out, err
}

// PrimaryVerified returns the user's verified primary destination, or
// ErrNoPrimaryDestination when none qualifies.
func (r *BankDetailRepository) PrimaryVerified(userID uint) (*models.BankDetail, error) {
	var d models.BankDetail
	err := r.db.Where("user_id = ? AND is_primary = ? AND is_verified = ?", userID, true, true).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPrimaryDestination
		}
		return nil, err
	}
	return &d, nil
}

// SetPrimary makes destination id the user's primary. The demote and promote
// happen under row locks in one transaction so at most one primary ever
// exists per user.
func (r *BankDetailRepository) SetPrimary(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var d models.BankDetail
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&d).Error
		if err != nil {
			return err
		}
		if err := tx.Model(&models.BankDetail{}).
			Where("user_id = ? AND is_primary = ?", userID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&d).Update("is_primary", true).Error
	})
}

func (r *BankDetailRepository) MarkVerified(id uint) error {
	return r.db.Model(&models.BankDetail{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": true, "verified_at": gorm.Expr("NOW()")}).Error
}
