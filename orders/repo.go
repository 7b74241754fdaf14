package orders

import (
	"context"

	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

// Repository reads and writes the order collection.
type Repository struct {
	store store.Accessor
}

// NewRepository builds a repository over the given store accessor.
func NewRepository(acc store.Accessor) *Repository {
	return &Repository{store: acc}
}

// All returns every order, empty when nothing persisted yet.
func (r *Repository) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if _, err := r.store.Load(ctx, r.store.Keys().Orders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SaveAll replaces the persisted orders with the provided value.
func (r *Repository) SaveAll(ctx context.Context, orders []models.Order) error {
	return r.store.Save(ctx, r.store.Keys().Orders, orders)
}

func findOrder(orders []models.Order, id string) (*models.Order, int) {
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], i
		}
	}
	return nil, -1
}
