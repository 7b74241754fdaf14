package tips

import (
	"context"

	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

// Repository reads and writes the tip collection.
type Repository struct {
	store store.Accessor
}

// NewRepository builds a repository over the given store accessor.
func NewRepository(acc store.Accessor) *Repository {
	return &Repository{store: acc}
}

// All returns every tip, empty when nothing persisted yet.
func (r *Repository) All(ctx context.Context) ([]models.Tip, error) {
	tips := []models.Tip{}
	if _, err := r.store.Load(ctx, r.store.Keys().Tips, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// SaveAll replaces the persisted tips with the provided value.
func (r *Repository) SaveAll(ctx context.Context, tips []models.Tip) error {
	return r.store.Save(ctx, r.store.Keys().Tips, tips)
}

func findTip(tips []models.Tip, id string) (*models.Tip, int) {
	for i := range tips {
		if tips[i].ID == id {
			return &tips[i], i
		}
	}
	return nil, -1
}
