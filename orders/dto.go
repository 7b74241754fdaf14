package orders

import "github.com/shopspring/decimal"

// CartLine is one catalog entry in a buyer's cart at checkout time. The
// price is snapshotted here so later listing edits cannot reprice an order.
type CartLine struct {
	ProductID string          `json:"productId" validate:"required"`
	SellerID  string          `json:"sellerId" validate:"required"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty" validate:"min=1"`
}
