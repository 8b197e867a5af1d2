package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoelk/pfennig/internal/entities"
)

// PaymentStore defines database operations for payment records. Every
// operation takes the owning user id; handlers pass the resolved identity
// and never a client-supplied one.
type PaymentStore interface {
	ListByUser(userID uint) ([]entities.Payment, error)
	InsertBatch(userID uint, records []entities.Payment) error
	DeleteForUser(userID uint, paymentIDs []uint) error
}

type PaymentsController struct {
	store PaymentStore
}

func NewPaymentsController(store PaymentStore) *PaymentsController {
	return &PaymentsController{store: store}
}

type paymentInput struct {
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Text     string  `json:"text"`
}

// ListPayments returns all payments of the authenticated user.
// GET /payments
func (pc *PaymentsController) ListPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	payments, err := pc.store.ListByUser(userID)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// AddPayments inserts a batch of payments for the authenticated user.
// POST /payments
func (pc *PaymentsController) AddPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Payments []paymentInput `json:"payments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if len(req.Payments) == 0 {
		respondBadRequest(c, "payments are required")
		return
	}

	records := make([]entities.Payment, 0, len(req.Payments))
	for _, p := range req.Payments {
		records = append(records, entities.Payment{
			Date:     p.Date,
			Time:     p.Time,
			Amount:   p.Amount,
			Category: p.Category,
			Text:     p.Text,
		})
	}

	if err := pc.store.InsertBatch(userID, records); err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, "payments added")
}

// DeletePayments deletes the given payment ids, restricted to rows owned
// by the authenticated user.
// DELETE /payments
func (pc *PaymentsController) DeletePayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		PaymentIDs []uint `json:"payment_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if len(req.PaymentIDs) == 0 {
		respondBadRequest(c, "payment_ids are required")
		return
	}

	if err := pc.store.DeleteForUser(userID, req.PaymentIDs); err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, "payments deleted")
}
