package repository

import (
	"errors"

	"hackpay/internal/models"
	"hackpay/internal/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the atomic multi-record surface the reconciliation
// engine runs on. Every update locks the matching rows for the duration of
// the closure, so concurrent webhooks for the same external id serialize
// and a payout and its paired transaction change together or not at all.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) UpdateTransactionByOrderID(orderID string, apply func(*models.Transaction) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_order_id = ?", orderID).
			First(&t).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reconcile.ErrNotFound
			}
			return err
		}
		if err := apply(&t); err != nil {
			if errors.Is(err, reconcile.ErrSkipUpdate) {
				return nil
			}
			return err
		}
		return tx.Save(&t).Error
	})
}

func (r *LedgerRepository) UpdatePayoutPairByPayoutID(payoutID string, apply func(*models.Payout, *models.Transaction) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var po models.Payout
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_payout_id = ?", payoutID).
			First(&po).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reconcile.ErrNotFound
			}
			return err
		}
		var t models.Transaction
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_payout_id = ?", payoutID).
			First(&t).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reconcile.ErrNotFound
			}
			return err
		}
		if err := apply(&po, &t); err != nil {
			if errors.Is(err, reconcile.ErrSkipUpdate) {
				return nil
			}
			return err
		}
		if err := tx.Save(&po).Error; err != nil {
			return err
		}
		return tx.Save(&t).Error
	})
}
