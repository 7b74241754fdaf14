package orders

import (
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/shopspring/decimal"
)

// sellerGroup collects a cart's lines for one seller.
type sellerGroup struct {
	sellerID string
	items    []models.OrderItem
	amount   decimal.Decimal
}

// groupLinesBySeller partitions the cart into per-seller groups. Groups come
// out in first-occurrence order of their seller, and lines keep the order
// they had in the cart, so checkout output is deterministic.
func groupLinesBySeller(lines []CartLine) []sellerGroup {
	groups := []sellerGroup{}
	index := map[string]int{}
	for _, line := range lines {
		idx, seen := index[line.SellerID]
		if !seen {
			idx = len(groups)
			index[line.SellerID] = idx
			groups = append(groups, sellerGroup{sellerID: line.SellerID, amount: decimal.Zero})
		}
		groups[idx].items = append(groups[idx].items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		groups[idx].amount = groups[idx].amount.Add(lineTotal)
	}
	return groups
}

// CartTotal sums the cart without partitioning, for display before checkout.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
