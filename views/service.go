package views

import (
	"context"
	"sort"
	"strings"

	"github.com/ruralep/platform/catalog"
	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/orders"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/tips"
	"go.uber.org/multierr"
)

// Service assembles read-only role dashboards. It never mutates state, so
// a record pointing at a deleted user is rendered with a placeholder name
// instead of being repaired or dropped.
type Service interface {
	Buyer(ctx context.Context, buyerID, query string) (*BuyerView, error)
	Seller(ctx context.Context, sellerID string) (*SellerView, error)
	Mentor(ctx context.Context, mentorID string) (*MentorView, error)
	Admin(ctx context.Context) (*AdminView, error)
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Store  *store.Client
	Logger *logger.Logger
}

type service struct {
	store *store.Client
	logg  *logger.Logger
}

// NewService constructs the view service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store client required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// Buyer returns the purchasable catalog, filtered by an optional
// case-insensitive search over product name, description and seller name,
// together with the buyer's own orders.
func (s *service) Buyer(ctx context.Context, buyerID, query string) (*BuyerView, error) {
	var loadErr error

	users, err := identity.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	products, err := catalog.NewRepository(s.store).Products(ctx)
	loadErr = multierr.Append(loadErr, err)
	allOrders, err := orders.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	if loadErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load buyer view")
	}

	names := displayNames(users)
	needle := strings.ToLower(strings.TrimSpace(query))

	entries := []CatalogEntry{}
	for _, product := range products {
		if !product.Approved || product.Stock <= 0 {
			continue
		}
		sellerName := resolveName(names, product.SellerID)
		if needle != "" && !matches(needle, product.Name, product.Description, sellerName) {
			continue
		}
		entries = append(entries, CatalogEntry{Product: product, SellerName: sellerName})
	}

	own := []models.Order{}
	for _, order := range allOrders {
		if order.BuyerID == buyerID {
			own = append(own, order)
		}
	}

	return &BuyerView{Catalog: entries, Orders: own}, nil
}

// Seller returns the seller dashboard: own listings and sales, the approved
// course library and every tip, plus the seller's UPI handle for display.
func (s *service) Seller(ctx context.Context, sellerID string) (*SellerView, error) {
	var loadErr error

	seller, err := identity.NewRepository(s.store).ByID(ctx, sellerID)
	loadErr = multierr.Append(loadErr, err)
	products, err := catalog.NewRepository(s.store).Products(ctx)
	loadErr = multierr.Append(loadErr, err)
	courses, err := catalog.NewRepository(s.store).Courses(ctx)
	loadErr = multierr.Append(loadErr, err)
	allOrders, err := orders.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	allTips, err := tips.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	if loadErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load seller view")
	}

	view := &SellerView{
		Products: []models.Product{},
		Orders:   []models.Order{},
		Courses:  []models.Course{},
		Tips:     sortedNewestFirst(allTips),
	}
	if seller != nil {
		view.UPI = seller.UPI
	}
	for _, product := range products {
		if product.SellerID == sellerID {
			view.Products = append(view.Products, product)
		}
	}
	for _, order := range allOrders {
		if order.SellerID == sellerID {
			view.Orders = append(view.Orders, order)
		}
	}
	for _, course := range courses {
		if course.Approved {
			view.Courses = append(view.Courses, course)
		}
	}
	return view, nil
}

// Mentor returns the mentor dashboard: own courses in every moderation
// state and the full tip feed.
func (s *service) Mentor(ctx context.Context, mentorID string) (*MentorView, error) {
	var loadErr error

	courses, err := catalog.NewRepository(s.store).Courses(ctx)
	loadErr = multierr.Append(loadErr, err)
	allTips, err := tips.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	if loadErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load mentor view")
	}

	view := &MentorView{Courses: []models.Course{}, Tips: sortedNewestFirst(allTips)}
	for _, course := range courses {
		if course.MentorID == mentorID {
			view.Courses = append(view.Courses, course)
		}
	}
	return view, nil
}

// Admin returns the moderation dashboard: accounts, listings and courses
// awaiting review, and the full order ledger with party names resolved.
func (s *service) Admin(ctx context.Context) (*AdminView, error) {
	var loadErr error

	users, err := identity.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	products, err := catalog.NewRepository(s.store).Products(ctx)
	loadErr = multierr.Append(loadErr, err)
	courses, err := catalog.NewRepository(s.store).Courses(ctx)
	loadErr = multierr.Append(loadErr, err)
	allOrders, err := orders.NewRepository(s.store).All(ctx)
	loadErr = multierr.Append(loadErr, err)
	if loadErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load admin view")
	}

	names := displayNames(users)
	view := &AdminView{
		PendingUsers:    []models.User{},
		PendingProducts: []models.Product{},
		PendingCourses:  []models.Course{},
		Orders:          []OrderEntry{},
	}
	for _, user := range users {
		if !user.Approved {
			view.PendingUsers = append(view.PendingUsers, user)
		}
	}
	for _, product := range products {
		if !product.Approved {
			view.PendingProducts = append(view.PendingProducts, product)
		}
	}
	for _, course := range courses {
		if !course.Approved {
			view.PendingCourses = append(view.PendingCourses, course)
		}
	}
	for _, order := range allOrders {
		view.Orders = append(view.Orders, OrderEntry{
			Order:      order,
			BuyerName:  resolveName(names, order.BuyerID),
			SellerName: resolveName(names, order.SellerID),
		})
	}
	return view, nil
}

func displayNames(users []models.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names
}

func resolveName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return unknownName
}

func matches(needle string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortedNewestFirst(list []models.Tip) []models.Tip {
	sorted := append([]models.Tip{}, list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
