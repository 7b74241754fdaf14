// Package seed loads the demo marketplace on first boot so every role has
// something to look at before anyone registers.
package seed

import (
	"context"
	"time"

	"github.com/ruralep/platform/catalog"
	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/orders"
	"github.com/ruralep/platform/pkg/config"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/security"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/tips"
	"github.com/shopspring/decimal"
)

// Demo credentials, one account per role. The password is the local part
// of the address.
const (
	AdminEmail  = "admin@rep.local"
	MentorEmail = "mentor@rep.local"
	SellerEmail = "seller@rep.local"
	BuyerEmail  = "buyer@rep.local"
)

// Bootstrap seeds the demo dataset when the store has never held users.
// A store with a users key, even an empty list, is left untouched, so a
// wiped-but-initialized registry survives restarts.
func Bootstrap(ctx context.Context, client *store.Client, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	if client == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "store client required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	seeded, err := client.Has(ctx, client.Keys().Users)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check seed state")
	}
	if seeded {
		return nil
	}

	users, err := demoUsers(passwordCfg)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	err = client.WithTx(ctx, func(tx *store.Tx) error {
		if err := identity.NewRepository(tx).SaveAll(ctx, users); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed users")
		}
		if err := catalog.NewRepository(tx).SaveProducts(ctx, demoProducts(now)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed products")
		}
		if err := catalog.NewRepository(tx).SaveCourses(ctx, demoCourses()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed courses")
		}
		if err := orders.NewRepository(tx).SaveAll(ctx, []models.Order{}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed orders")
		}
		if err := tips.NewRepository(tx).SaveAll(ctx, demoTips(now)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed tips")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logg.Info(ctx, "demo data seeded")
	return nil
}

func demoUsers(passwordCfg config.PasswordConfig) ([]models.User, error) {
	users := []models.User{
		{ID: "u_admin", Name: "Admin", Email: AdminEmail, Role: enums.UserRoleAdmin, Approved: true},
		{ID: "u_mentor", Name: "Anita Deshmukh", Email: MentorEmail, Role: enums.UserRoleMentor, Approved: true},
		{
			ID: "u_seller", Name: "Ramesh Pawar", Email: SellerEmail, Role: enums.UserRoleSeller, Approved: true,
			UPI: "ramesh@upi", Phone: "9876543210", Village: "Rampur", Category: "Handicrafts",
		},
		{ID: "u_buyer", Name: "Priya Sharma", Email: BuyerEmail, Role: enums.UserRoleBuyer, Approved: true},
	}
	for i := range users {
		hash, err := security.HashCredential(passwordOf(users[i].Email), passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash demo credential")
		}
		users[i].CredentialHash = hash
	}
	return users, nil
}

// passwordOf derives the demo password from the address local part.
func passwordOf(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}

func demoProducts(now time.Time) []models.Product {
	return []models.Product{
		{
			ID:          "p_basket",
			SellerID:    "u_seller",
			Name:        "Handwoven Basket",
			Price:       decimal.NewFromInt(499),
			Stock:       25,
			Description: "Bamboo basket woven by hand",
			Approved:    true,
			CreatedAt:   now,
		},
		{
			ID:          "p_jaggery",
			SellerID:    "u_seller",
			Name:        "Organic Jaggery",
			Price:       decimal.NewFromInt(199),
			Stock:       40,
			Description: "Chemical-free cane jaggery",
			Approved:    true,
			CreatedAt:   now,
		},
	}
}

func demoCourses() []models.Course {
	return []models.Course{
		{
			ID:       "c_pricing",
			MentorID: "u_mentor",
			Title:    "Pricing Your Produce",
			Level:    enums.CourseLevelBeginner,
			Format:   enums.CourseFormatVideo,
			URL:      "https://learn.rep.local/pricing",
			Summary:  "How to set a fair price that still earns",
			Approved: true,
		},
		{
			ID:       "c_online",
			MentorID: "u_mentor",
			Title:    "Selling Online Basics",
			Level:    enums.CourseLevelBeginner,
			Format:   enums.CourseFormatArticle,
			URL:      "https://learn.rep.local/online-basics",
			Summary:  "Photos, listings and first orders",
			Approved: true,
		},
	}
}

func demoTips(now time.Time) []models.Tip {
	return []models.Tip{
		{
			ID:        "t_welcome",
			MentorID:  "u_mentor",
			Text:      "Weigh and label every packet. Trust brings repeat buyers.",
			CreatedAt: now,
		},
	}
}
