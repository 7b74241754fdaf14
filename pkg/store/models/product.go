package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a seller listing. It only reaches the buyer catalog
// once an admin approves it and while stock remains.
type Product struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"sellerId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"desc,omitempty"`
	Approved    bool            `json:"approved"`
	CreatedAt   time.Time       `json:"createdAt"`
}
