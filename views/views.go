package views

import "github.com/ruralep/platform/pkg/store/models"

// unknownName is the placeholder shown when a record references a user that
// no longer exists. Rejections delete users without cascading.
const unknownName = "unknown"

// CatalogEntry is a purchasable product with its seller's display name.
type CatalogEntry struct {
	Product    models.Product `json:"product"`
	SellerName string         `json:"sellerName"`
}

// OrderEntry is an order with both parties' display names resolved.
type OrderEntry struct {
	Order      models.Order `json:"order"`
	BuyerName  string       `json:"buyerName"`
	SellerName string       `json:"sellerName"`
}

// BuyerView is the buyer dashboard: the searchable catalog and own orders.
type BuyerView struct {
	Catalog []CatalogEntry `json:"catalog"`
	Orders  []models.Order `json:"orders"`
}

// SellerView is the seller dashboard.
type SellerView struct {
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
	Courses  []models.Course  `json:"courses"`
	Tips     []models.Tip     `json:"tips"`
	UPI      string           `json:"upi"`
}

// MentorView is the mentor dashboard.
type MentorView struct {
	Courses []models.Course `json:"courses"`
	Tips    []models.Tip    `json:"tips"`
}

// AdminView is the moderation dashboard: everything awaiting review plus
// the full order ledger.
type AdminView struct {
	PendingUsers    []models.User    `json:"pendingUsers"`
	PendingProducts []models.Product `json:"pendingProducts"`
	PendingCourses  []models.Course  `json:"pendingCourses"`
	Orders          []OrderEntry     `json:"orders"`
}
