package catalog

import (
	"context"

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

const productComponent = "catalog_products"

// ProductService manages seller listings and their moderation queue.
type ProductService interface {
	Submit(ctx context.Context, actorID string, input ProductInput) (*models.Product, error)
	Approve(ctx context.Context, actorID, productID string) error
	Reject(ctx context.Context, actorID, productID string) error
	Patch(ctx context.Context, actorID, productID string, patch ProductPatch) (*models.Product, error)
	AdjustStock(ctx context.Context, actorID, productID string, delta int) (*models.Product, error)
	Remove(ctx context.Context, actorID, productID string) error
	Visible(ctx context.Context) ([]models.Product, error)
	BySeller(ctx context.Context, sellerID string) ([]models.Product, error)
}

// ProductServiceParams bundles the dependencies required to build the service.
type ProductServiceParams struct {
	Store   *store.Client
	Logger  *logger.Logger
	Metrics *metrics.Operations
	Clock   clock.Clock
	IDs     ids.Generator
}

type productService struct {
	store   *store.Client
	logg    *logger.Logger
	metrics *metrics.Operations
	clock   clock.Clock
	ids     ids.Generator
}

// NewProductService constructs the listing service.
func NewProductService(params ProductServiceParams) (ProductService, error) {
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
	return &productService{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		clock:   params.Clock,
		ids:     params.IDs,
	}, nil
}

// Submit creates an unapproved listing owned by the acting seller.
func (s *productService) Submit(ctx context.Context, actorID string, input ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		s.metrics.IncFailure(productComponent, "submit")
		return nil, err
	}
	if !input.Price.IsPositive() {
		s.metrics.IncFailure(productComponent, "submit")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	var created models.Product
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		seller, err := requireApproved(ctx, tx, actorID, enums.UserRoleSeller)
		if err != nil {
			return err
		}
		repo := NewRepository(tx)
		products, err := repo.Products(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		created = models.Product{
			ID:          s.ids.New(ids.PrefixProduct),
			SellerID:    seller.ID,
			Name:        input.Name,
			Price:       input.Price,
			Stock:       input.Stock,
			Image:       input.Image,
			Description: input.Description,
			Approved:    false,
			CreatedAt:   s.clock.Now(),
		}
		if err := repo.SaveProducts(ctx, append(products, created)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(productComponent, "submit")
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"product_id": created.ID, "seller_id": created.SellerID}), "product submitted for review")
	s.metrics.IncSuccess(productComponent, "submit")
	return &created, nil
}

// Approve publishes a pending listing. Admin only.
func (s *productService) Approve(ctx context.Context, actorID, productID string) error {
	return s.moderate(ctx, "approve", actorID, productID, func(products []models.Product, idx int) []models.Product {
		products[idx].Approved = true
		return products
	})
}

// Reject deletes a listing outright. Admin only. Orders referencing the id
// keep their line snapshots.
func (s *productService) Reject(ctx context.Context, actorID, productID string) error {
	return s.moderate(ctx, "reject", actorID, productID, func(products []models.Product, idx int) []models.Product {
		return append(products[:idx], products[idx+1:]...)
	})
}

func (s *productService) moderate(ctx context.Context, op, actorID, productID string, apply func([]models.Product, int) []models.Product) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := requireAdmin(ctx, tx, actorID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		products, err := repo.Products(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		_, idx := findProduct(products, productID)
		if idx < 0 {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "product moderation target missing, no-op")
			return nil
		}
		if err := repo.SaveProducts(ctx, apply(products, idx)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(productComponent, op)
		return err
	}
	s.metrics.IncSuccess(productComponent, op)
	return nil
}

// Patch shallow-merges the provided fields. Owner or admin.
func (s *productService) Patch(ctx context.Context, actorID, productID string, patch ProductPatch) (*models.Product, error) {
	var updated *models.Product
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		products, err := repo.Products(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		product, idx := findProduct(products, productID)
		if product == nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "product patch target missing, no-op")
			return nil
		}
		if err := requireOwnerOrAdmin(ctx, tx, actorID, product.SellerID); err != nil {
			return err
		}
		applyProductPatch(product, patch)
		if err := repo.SaveProducts(ctx, products); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
		}
		copied := products[idx]
		updated = &copied
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(productComponent, "patch")
		return nil, err
	}
	s.metrics.IncSuccess(productComponent, "patch")
	return updated, nil
}

// AdjustStock applies delta to a listing's stock, clamping at zero.
func (s *productService) AdjustStock(ctx context.Context, actorID, productID string, delta int) (*models.Product, error) {
	var updated *models.Product
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		products, err := repo.Products(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		product, idx := findProduct(products, productID)
		if product == nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "stock adjust target missing, no-op")
			return nil
		}
		if err := requireOwnerOrAdmin(ctx, tx, actorID, product.SellerID); err != nil {
			return err
		}
		product.Stock += delta
		if product.Stock < 0 {
			product.Stock = 0
		}
		if err := repo.SaveProducts(ctx, products); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
		}
		copied := products[idx]
		updated = &copied
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(productComponent, "adjust_stock")
		return nil, err
	}
	s.metrics.IncSuccess(productComponent, "adjust_stock")
	return updated, nil
}

// Remove deletes a listing. Owner or admin.
func (s *productService) Remove(ctx context.Context, actorID, productID string) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		products, err := repo.Products(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		product, idx := findProduct(products, productID)
		if product == nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "product removal target missing, no-op")
			return nil
		}
		if err := requireOwnerOrAdmin(ctx, tx, actorID, product.SellerID); err != nil {
			return err
		}
		if err := repo.SaveProducts(ctx, append(products[:idx], products[idx+1:]...)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(productComponent, "remove")
		return err
	}
	s.metrics.IncSuccess(productComponent, "remove")
	return nil
}

// Visible lists approved, in-stock products for the buyer catalog.
func (s *productService) Visible(ctx context.Context) ([]models.Product, error) {
	products, err := NewRepository(s.store).Products(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	visible := []models.Product{}
	for _, product := range products {
		if product.Approved && product.Stock > 0 {
			visible = append(visible, product)
		}
	}
	return visible, nil
}

// BySeller lists a seller's own products regardless of moderation state.
func (s *productService) BySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	products, err := NewRepository(s.store).Products(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	owned := []models.Product{}
	for _, product := range products {
		if product.SellerID == sellerID {
			owned = append(owned, product)
		}
	}
	return owned, nil
}

func applyProductPatch(product *models.Product, patch ProductPatch) {
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
}
