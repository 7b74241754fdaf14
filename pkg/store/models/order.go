package models

import (
	"time"

	"github.com/ruralep/platform/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderItem is the snapshot of one purchased line.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Order is scoped to exactly one seller. A multi-seller cart produces one
// order per seller at checkout.
type Order struct {
	ID          string            `json:"id"`
	BuyerID     string            `json:"buyerId"`
	SellerID    string            `json:"sellerId"`
	Items       []OrderItem       `json:"items"`
	Amount      decimal.Decimal   `json:"amount"`
	Paid        bool              `json:"paid"`
	Status      enums.OrderStatus `json:"status"`
	PaymentMode enums.PaymentMode `json:"paymentMode"`
	CreatedAt   time.Time         `json:"createdAt"`
}
