package catalog

import (
	"context"

	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

// actor resolves the acting user, nil when the id is unknown.
func actor(ctx context.Context, acc store.Accessor, actorID string) (*models.User, error) {
	user, err := identity.NewRepository(acc).ByID(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	return user, nil
}

// requireApproved gates submissions on an approved account with the role.
func requireApproved(ctx context.Context, acc store.Accessor, actorID string, role enums.UserRole) (*models.User, error) {
	user, err := actor(ctx, acc, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != role || !user.Approved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "approved "+role.String()+" account required")
	}
	return user, nil
}

// requireAdmin gates moderation operations.
func requireAdmin(ctx context.Context, acc store.Accessor, actorID string) error {
	user, err := actor(ctx, acc, actorID)
	if err != nil {
		return err
	}
	if user == nil || user.Role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

// requireOwnerOrAdmin gates edits to the record owner and admins.
func requireOwnerOrAdmin(ctx context.Context, acc store.Accessor, actorID, ownerID string) error {
	user, err := actor(ctx, acc, actorID)
	if err != nil {
		return err
	}
	if user == nil || (user.ID != ownerID && user.Role != enums.UserRoleAdmin) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "owner or admin required")
	}
	return nil
}
