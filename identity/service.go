package identity

import (
	"context"

	"github.com/ruralep/platform/pkg/config"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/ids"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/metrics"
	"github.com/ruralep/platform/pkg/security"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/pkg/validate"
)

const component = "identity"

// Service covers registration, credentials, the session pointer, and the
// admin approval gate for sellers and mentors.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	Approve(ctx context.Context, actorID, userID string) error
	Reject(ctx context.Context, actorID, userID string) error
	UpdateProfile(ctx context.Context, actorID, userID string, patch ProfilePatch) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Store          *store.Client
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
	Metrics        *metrics.Operations
	IDs            ids.Generator
}

type service struct {
	store       *store.Client
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	metrics     *metrics.Operations
	ids         ids.Generator
}

// NewService constructs the identity service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store client required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.IDs == nil {
		params.IDs = ids.UUIDGenerator{}
	}
	return &service{
		store:       params.Store,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
		metrics:     params.Metrics,
		ids:         params.IDs,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validate.Struct(input); err != nil {
		s.metrics.IncFailure(component, "register")
		return nil, err
	}

	hash, err := security.HashCredential(input.Password, s.passwordCfg)
	if err != nil {
		s.metrics.IncFailure(component, "register")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash credential")
	}

	user := models.User{
		ID:             s.ids.New(ids.PrefixUser),
		Name:           input.Name,
		Email:          normalizeEmail(input.Email),
		CredentialHash: hash,
		Role:           input.Role,
		Approved:       input.Role == enums.UserRoleBuyer,
		UPI:            input.UPI,
		Phone:          input.Phone,
		Village:        input.Village,
		Category:       input.Category,
	}

	err = s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		users, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if existing, _ := findUserByEmail(users, user.Email); existing != nil {
			return pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email already registered")
		}
		if err := repo.SaveAll(ctx, append(users, user)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
		}
		if user.Approved {
			if err := repo.SaveSession(ctx, &models.Session{ID: user.ID}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "register")
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": user.ID, "role": user.Role.String()})
	if user.Approved {
		s.logg.Info(logCtx, "user registered and logged in")
	} else {
		s.logg.Info(logCtx, "user registered, awaiting admin approval")
	}
	s.metrics.IncSuccess(component, "register")
	return &user, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validate.Struct(input); err != nil {
		s.metrics.IncFailure(component, "login")
		return nil, err
	}

	repo := NewRepository(s.store)
	users, err := repo.All(ctx)
	if err != nil {
		s.metrics.IncFailure(component, "login")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}

	user, _ := findUserByEmail(users, input.Email)
	if user == nil {
		s.metrics.IncFailure(component, "login")
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid credentials")
	}
	ok, err := security.VerifyCredential(input.Password, user.CredentialHash)
	if err != nil || !ok {
		s.metrics.IncFailure(component, "login")
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid credentials")
	}
	if !user.Approved {
		s.metrics.IncFailure(component, "login")
		return nil, pkgerrors.New(pkgerrors.CodeNotApproved, "account not approved by admin yet")
	}

	if err := repo.SaveSession(ctx, &models.Session{ID: user.ID}); err != nil {
		s.metrics.IncFailure(component, "login")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user logged in")
	s.metrics.IncSuccess(component, "login")
	return user, nil
}

func (s *service) Logout(ctx context.Context) error {
	repo := NewRepository(s.store)
	if err := repo.SaveSession(ctx, nil); err != nil {
		s.metrics.IncFailure(component, "logout")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session")
	}
	s.metrics.IncSuccess(component, "logout")
	return nil
}

// CurrentUser resolves the session pointer. A session referencing a deleted
// user is treated as invalid and cleared rather than surfaced.
func (s *service) CurrentUser(ctx context.Context) (*models.User, error) {
	repo := NewRepository(s.store)
	session, err := repo.Session(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	if session == nil || session.ID == "" {
		return nil, nil
	}
	user, err := repo.ByID(ctx, session.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	if user == nil {
		s.logg.Warn(s.logg.WithUserID(ctx, session.ID), "session references a missing user, clearing")
		if err := repo.SaveSession(ctx, nil); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear stale session")
		}
		return nil, nil
	}
	return user, nil
}

func (s *service) Approve(ctx context.Context, actorID, userID string) error {
	return s.moderate(ctx, "approve", actorID, userID, func(users []models.User, idx int) []models.User {
		users[idx].Approved = true
		return users
	})
}

// Reject deletes the user record outright. Products and orders referencing
// the id are left in place and resolved defensively at read time.
func (s *service) Reject(ctx context.Context, actorID, userID string) error {
	return s.moderate(ctx, "reject", actorID, userID, func(users []models.User, idx int) []models.User {
		return append(users[:idx], users[idx+1:]...)
	})
}

func (s *service) moderate(ctx context.Context, op, actorID, userID string, apply func([]models.User, int) []models.User) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		users, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if err := requireAdmin(users, actorID); err != nil {
			return err
		}
		_, idx := findUser(users, userID)
		if idx < 0 {
			s.logg.Warn(s.logg.WithUserID(ctx, userID), "user moderation target missing, no-op")
			return nil
		}
		if err := repo.SaveAll(ctx, apply(users, idx)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, op)
		return err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"user_id": userID, "actor_id": actorID}), "user "+op)
	s.metrics.IncSuccess(component, op)
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID, userID string, patch ProfilePatch) (*models.User, error) {
	var updated *models.User
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		users, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		actor, _ := findUser(users, actorID)
		if actor == nil || (actor.ID != userID && actor.Role != enums.UserRoleAdmin) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot edit another user's profile")
		}
		user, idx := findUser(users, userID)
		if user == nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID), "profile patch target missing, no-op")
			return nil
		}
		applyPatch(user, patch)
		if err := repo.SaveAll(ctx, users); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
		}
		copied := users[idx]
		updated = &copied
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "update_profile")
		return nil, err
	}
	s.metrics.IncSuccess(component, "update_profile")
	return updated, nil
}

func applyPatch(user *models.User, patch ProfilePatch) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.UPI != nil {
		user.UPI = *patch.UPI
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Village != nil {
		user.Village = *patch.Village
	}
	if patch.Category != nil {
		user.Category = *patch.Category
	}
}

func requireAdmin(users []models.User, actorID string) error {
	actor, _ := findUser(users, actorID)
	if actor == nil || actor.Role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}
