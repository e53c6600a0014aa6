package repository

import (
	"hackpay/internal/models"

	"gorm.io/gorm"
)

// ReconciliationRepository is the dead-letter log for partial failures.
type ReconciliationRepository struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

func (r *ReconciliationRepository) Record(f *models.ReconciliationFailure) error {
	return r.db.Create(f).Error
}

func (r *ReconciliationRepository) ListUnresolved() ([]models.ReconciliationFailure, error) {
	var out []models.ReconciliationFailure
	err := r.db.Where("resolved = ?", false).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *ReconciliationRepository) MarkResolved(id uint) error {
	return r.db.Model(&models.ReconciliationFailure{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": gorm.Expr("NOW()")}).Error
}
