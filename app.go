// Package platform wires the rural marketplace components together: the
// sqlite-backed store, identity and moderation services, order lifecycle,
// mentor content and the role dashboards. Embedders construct an App and
// put whatever surface they like in front of it.
package platform

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ruralep/platform/catalog"
	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/orders"
	"github.com/ruralep/platform/pkg/config"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/metrics"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/seed"
	"github.com/ruralep/platform/tips"
	"github.com/ruralep/platform/views"
)

// App is the assembled platform.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    *store.Client
	Registry *prometheus.Registry

	Identity identity.Service
	Products catalog.ProductService
	Courses  catalog.CourseService
	Orders   orders.Service
	Tips     tips.Service
	Views    views.Service
}

// New loads configuration from the environment (and a .env file when
// present), opens the store, seeds the demo dataset on first boot and
// builds every service.
func New(ctx context.Context) (*App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load config")
	}

	logg := logger.New(logger.Options{
		ServiceName: "ruralep",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := store.New(ctx, cfg.Store, logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open store")
	}

	registry := prometheus.NewRegistry()
	ops := metrics.NewOperations(registry)

	if cfg.Store.AutoSeed {
		if err := seed.Bootstrap(ctx, client, cfg.Password, logg); err != nil {
			_ = client.Close()
			return nil, err
		}
	}

	identitySvc, err := identity.NewService(identity.ServiceParams{
		Store:          client,
		PasswordConfig: cfg.Password,
		Logger:         logg,
		Metrics:        ops,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	productSvc, err := catalog.NewProductService(catalog.ProductServiceParams{
		Store:   client,
		Logger:  logg,
		Metrics: ops,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	courseSvc, err := catalog.NewCourseService(catalog.CourseServiceParams{
		Store:   client,
		Logger:  logg,
		Metrics: ops,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	orderSvc, err := orders.NewService(orders.ServiceParams{
		Store:   client,
		Logger:  logg,
		Metrics: ops,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	tipSvc, err := tips.NewService(tips.ServiceParams{
		Store:   client,
		Logger:  logg,
		Metrics: ops,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	viewSvc, err := views.NewService(views.ServiceParams{
		Store:  client,
		Logger: logg,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logg.Info(ctx, "platform ready")
	return &App{
		Config:   cfg,
		Logger:   logg,
		Store:    client,
		Registry: registry,
		Identity: identitySvc,
		Products: productSvc,
		Courses:  courseSvc,
		Orders:   orderSvc,
		Tips:     tipSvc,
		Views:    viewSvc,
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
