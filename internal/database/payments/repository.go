// Package payments provides database operations for payment records.
// Every query is scoped to a user id; there is deliberately no way to
// read or mutate payments across account boundaries.
package payments

import (
	"gorm.io/gorm"

	"github.com/avoelk/pfennig/internal/entities"
)

// Repository handles all payment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new payments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns all payments owned by the given user, oldest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Payment, error) {
	var payments []entities.Payment
	err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// InsertBatch inserts payments for the given user in a single
// transaction. The owner id is overwritten on every record so a
// client-supplied user_id can never land in storage.
func (r *Repository) InsertBatch(userID uint, records []entities.Payment) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			records[i].ID = 0
			records[i].UserID = userID
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForUser deletes the given payment ids, restricted to rows owned
// by the user. Ids belonging to other users are silently skipped.
func (r *Repository) DeleteForUser(userID uint, paymentIDs []uint) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	return r.db.
		Where("user_id = ? AND id IN ?", userID, paymentIDs).
		Delete(&entities.Payment{}).Error
}
