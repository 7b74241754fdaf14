package identity

import (
	"context"
	"strings"

	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

// Repository reads and writes the user registry and the session pointer.
type Repository struct {
	store store.Accessor
}

// NewRepository builds a repository over the given store accessor.
func NewRepository(acc store.Accessor) *Repository {
	return &Repository{store: acc}
}

// All returns the full user registry, empty when nothing persisted yet.
func (r *Repository) All(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if _, err := r.store.Load(ctx, r.store.Keys().Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveAll replaces the persisted registry with the provided value.
func (r *Repository) SaveAll(ctx context.Context, users []models.User) error {
	return r.store.Save(ctx, r.store.Keys().Users, users)
}

// ByID scans the registry for a user id.
func (r *Repository) ByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	if user, _ := findUser(users, id); user != nil {
		return user, nil
	}
	return nil, nil
}

// Session returns the current session pointer, nil when logged out.
func (r *Repository) Session(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	if _, err := r.store.Load(ctx, r.store.Keys().Session, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveSession replaces the session pointer; nil persists a logged-out state.
func (r *Repository) SaveSession(ctx context.Context, session *models.Session) error {
	return r.store.Save(ctx, r.store.Keys().Session, session)
}

func findUser(users []models.User, id string) (*models.User, int) {
	for i := range users {
		if users[i].ID == id {
			return &users[i], i
		}
	}
	return nil, -1
}

func findUserByEmail(users []models.User, email string) (*models.User, int) {
	normalized := normalizeEmail(email)
	for i := range users {
		if normalizeEmail(users[i].Email) == normalized {
			return &users[i], i
		}
	}
	return nil, -1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
