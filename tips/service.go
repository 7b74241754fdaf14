package tips

import (
	"context"
	"sort"
	"strings"

	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/pkg/clock"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/ids"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/metrics"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

const component = "tips"

// Service handles mentor advice posts. Tips skip the moderation queue and
// are visible the moment they land.
type Service interface {
	Post(ctx context.Context, actorID, text string) (*models.Tip, error)
	List(ctx context.Context) ([]models.Tip, error)
	Remove(ctx context.Context, actorID, tipID string) error
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Store   *store.Client
	Logger  *logger.Logger
	Metrics *metrics.Operations
	Clock   clock.Clock
	IDs     ids.Generator
}

type service struct {
	store   *store.Client
	logg    *logger.Logger
	metrics *metrics.Operations
	clock   clock.Clock
	ids     ids.Generator
}

// NewService constructs the tips service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store client required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Clock == nil {
		params.Clock = clock.System{}
	}
	if params.IDs == nil {
		params.IDs = ids.UUIDGenerator{}
	}
	return &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		clock:   params.Clock,
		ids:     params.IDs,
	}, nil
}

// Post publishes a tip from an approved mentor.
func (s *service) Post(ctx context.Context, actorID, text string) (*models.Tip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.IncFailure(component, "post")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tip text is required")
	}

	var created models.Tip
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		mentor, err := identity.NewRepository(tx).ByID(ctx, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if mentor == nil || mentor.Role != enums.UserRoleMentor || !mentor.Approved {
			return pkgerrors.New(pkgerrors.CodeForbidden, "approved mentor account required")
		}
		repo := NewRepository(tx)
		tips, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tips")
		}
		created = models.Tip{
			ID:        s.ids.New(ids.PrefixTip),
			MentorID:  mentor.ID,
			Text:      text,
			CreatedAt: s.clock.Now(),
		}
		if err := repo.SaveAll(ctx, append(tips, created)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tips")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "post")
		return nil, err
	}

	s.metrics.IncSuccess(component, "post")
	return &created, nil
}

// List returns all tips, newest first.
func (s *service) List(ctx context.Context) ([]models.Tip, error) {
	tips, err := NewRepository(s.store).All(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tips")
	}
	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].CreatedAt.After(tips[j].CreatedAt)
	})
	return tips, nil
}

// Remove deletes a tip. Owner or admin.
func (s *service) Remove(ctx context.Context, actorID, tipID string) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		tips, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tips")
		}
		tip, idx := findTip(tips, tipID)
		if tip == nil {
			s.logg.Warn(s.logg.WithField(ctx, "tip_id", tipID), "tip removal target missing, no-op")
			return nil
		}
		actor, err := identity.NewRepository(tx).ByID(ctx, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if actor == nil || (actor.ID != tip.MentorID && actor.Role != enums.UserRoleAdmin) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "owner or admin required")
		}
		if err := repo.SaveAll(ctx, append(tips[:idx], tips[idx+1:]...)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tips")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "remove")
		return err
	}
	s.metrics.IncSuccess(component, "remove")
	return nil
}
