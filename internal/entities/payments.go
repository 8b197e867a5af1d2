package entities

import (
	"time"
)

// Payment is a single expense record owned by exactly one user.
// Date and Time are kept as strings on purpose: they are opaque to the
// backend and rendered verbatim by clients.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Date      string    `gorm:"size:32" json:"date"`
	Time      string    `gorm:"size:32" json:"time"`
	Amount    float64   `json:"amount"`
	Category  string    `gorm:"index;size:100" json:"category"`
	Text      string    `gorm:"size:512" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
