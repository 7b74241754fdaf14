package orders

import (
	"context"

	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/pkg/clock"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/ids"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/metrics"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/pkg/validate"
)

const component = "orders"

// Service turns carts into per-seller orders and tracks their lifecycle.
type Service interface {
	Checkout(ctx context.Context, buyerID string, lines []CartLine) ([]models.Order, error)
	MarkPaid(ctx context.Context, actorID, orderID string) error
	SetStatus(ctx context.Context, actorID, orderID string, status enums.OrderStatus) error
	ListFor(ctx context.Context, userID string, role enums.UserRole) ([]models.Order, error)
	Remove(ctx context.Context, actorID, orderID string) error
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

// NewService constructs the order service.
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

// Checkout splits the cart into one pending order per distinct seller.
// Output orders follow the first-occurrence order of sellers in the cart
// and all of them are persisted in one write. An empty cart writes nothing.
func (s *service) Checkout(ctx context.Context, buyerID string, lines []CartLine) ([]models.Order, error) {
	if len(lines) == 0 {
		s.logg.Warn(s.logg.WithUserID(ctx, buyerID), "checkout with empty cart, no-op")
		return []models.Order{}, nil
	}
	for _, line := range lines {
		if err := validate.Struct(line); err != nil {
			s.metrics.IncFailure(component, "checkout")
			return nil, err
		}
	}

	created := []models.Order{}
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		buyer, err := identity.NewRepository(tx).ByID(ctx, buyerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if buyer == nil || buyer.Role != enums.UserRoleBuyer || !buyer.Approved {
			return pkgerrors.New(pkgerrors.CodeForbidden, "approved buyer account required")
		}

		repo := NewRepository(tx)
		orders, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
		}

		now := s.clock.Now()
		for _, group := range groupLinesBySeller(lines) {
			created = append(created, models.Order{
				ID:          s.ids.New(ids.PrefixOrder),
				BuyerID:     buyerID,
				SellerID:    group.sellerID,
				Items:       group.items,
				Amount:      group.amount,
				Paid:        false,
				Status:      enums.OrderStatusPending,
				PaymentMode: enums.PaymentModeUPI,
				CreatedAt:   now,
			})
		}
		if err := repo.SaveAll(ctx, append(orders, created...)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "checkout")
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"buyer_id": buyerID, "orders": len(created)}), "checkout complete")
	s.metrics.IncSuccess(component, "checkout")
	return created, nil
}

// MarkPaid records the seller's confirmation that payment arrived. Only the
// order's seller may call it, and repeating it changes nothing.
func (s *service) MarkPaid(ctx context.Context, actorID, orderID string) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		orders, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
		}
		order, _ := findOrder(orders, orderID)
		if order == nil {
			s.logg.Warn(s.logg.WithField(ctx, "order_id", orderID), "mark-paid target missing, no-op")
			return nil
		}
		if order.SellerID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the order's seller can mark it paid")
		}
		if order.Paid {
			return nil
		}
		order.Paid = true
		order.Status = enums.OrderStatusConfirmed
		if err := repo.SaveAll(ctx, orders); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "mark_paid")
		return err
	}
	s.metrics.IncSuccess(component, "mark_paid")
	return nil
}

// SetStatus moves an order to any lifecycle status. Admin only; transitions
// are unrestricted.
func (s *service) SetStatus(ctx context.Context, actorID, orderID string, status enums.OrderStatus) error {
	if !status.IsValid() {
		s.metrics.IncFailure(component, "set_status")
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": status.String()})
	}
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		admin, err := identity.NewRepository(tx).ByID(ctx, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if admin == nil || admin.Role != enums.UserRoleAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
		}
		repo := NewRepository(tx)
		orders, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
		}
		order, _ := findOrder(orders, orderID)
		if order == nil {
			s.logg.Warn(s.logg.WithField(ctx, "order_id", orderID), "status target missing, no-op")
			return nil
		}
		order.Status = status
		if err := repo.SaveAll(ctx, orders); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(component, "set_status")
		return err
	}
	s.metrics.IncSuccess(component, "set_status")
	return nil
}

// ListFor scopes orders to the caller: buyers see their purchases, sellers
// their sales, admins everything, other roles nothing.
func (s *service) ListFor(ctx context.Context, userID string, role enums.UserRole) ([]models.Order, error) {
	orders, err := NewRepository(s.store).All(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}
	switch role {
	case enums.UserRoleAdmin:
		return orders, nil
	case enums.UserRoleBuyer:
		return filterOrders(orders, func(o models.Order) bool { return o.BuyerID == userID }), nil
	case enums.UserRoleSeller:
		return filterOrders(orders, func(o models.Order) bool { return o.SellerID == userID }), nil
	default:
		return []models.Order{}, nil
	}
}

// Remove deletes an order record. Admin only.
func (s *service) Remove(ctx context.Context, actorID, orderID string) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		admin, err := identity.NewRepository(tx).ByID(ctx, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
		}
		if admin == nil || admin.Role != enums.UserRoleAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
		}
		repo := NewRepository(tx)
		orders, err := repo.All(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
		}
		_, idx := findOrder(orders, orderID)
		if idx < 0 {
			s.logg.Warn(s.logg.WithField(ctx, "order_id", orderID), "order removal target missing, no-op")
			return nil
		}
		if err := repo.SaveAll(ctx, append(orders[:idx], orders[idx+1:]...)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
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

func filterOrders(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := []models.Order{}
	for _, order := range orders {
		if keep(order) {
			out = append(out, order)
		}
	}
	return out
}
