package views

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruralep/platform/catalog"
	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/orders"
	"github.com/ruralep/platform/pkg/config"
	"github.com/ruralep/platform/pkg/enums"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/tips"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *store.Client {
	t.Helper()
	cfg := config.StoreConfig{
		Path:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		KeyPrefix: "rep",
	}
	client, err := store.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// fixture loads a small marketplace: two sellers (one with a pending
// product), a mentor with a course in each state, a buyer with one order,
// and one order pointing at a deleted seller.
func fixture(t *testing.T, client *store.Client) {
	t.Helper()
	ctx := context.Background()

	users := []models.User{
		{ID: "u_s1", Name: "Ramesh", Email: "s1@rep.local", Role: enums.UserRoleSeller, Approved: true, UPI: "ramesh@upi"},
		{ID: "u_s2", Name: "Lakshmi", Email: "s2@rep.local", Role: enums.UserRoleSeller, Approved: false},
		{ID: "u_m1", Name: "Anita", Email: "m1@rep.local", Role: enums.UserRoleMentor, Approved: true},
		{ID: "u_b1", Name: "Priya", Email: "b1@rep.local", Role: enums.UserRoleBuyer, Approved: true},
	}
	if err := identity.NewRepository(client).SaveAll(ctx, users); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	products := []models.Product{
		{ID: "p_basket", SellerID: "u_s1", Name: "Handwoven Basket", Description: "bamboo", Price: decimal.NewFromInt(499), Stock: 25, Approved: true},
		{ID: "p_jaggery", SellerID: "u_s1", Name: "Organic Jaggery", Price: decimal.NewFromInt(199), Stock: 0, Approved: true},
		{ID: "p_mat", SellerID: "u_s2", Name: "Grass Mat", Price: decimal.NewFromInt(250), Stock: 10, Approved: false},
		{ID: "p_ghost", SellerID: "u_gone", Name: "Ghee", Price: decimal.NewFromInt(700), Stock: 5, Approved: true},
	}
	if err := catalog.NewRepository(client).SaveProducts(ctx, products); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	courses := []models.Course{
		{ID: "c_pricing", MentorID: "u_m1", Title: "Pricing Your Produce", Level: enums.CourseLevelBeginner, Format: enums.CourseFormatVideo, URL: "https://learn.rep.local/pricing", Approved: true},
		{ID: "c_draft", MentorID: "u_m1", Title: "Festival Stock Planning", Level: enums.CourseLevelIntermediate, Format: enums.CourseFormatArticle, URL: "https://learn.rep.local/festival", Approved: false},
	}
	if err := catalog.NewRepository(client).SaveCourses(ctx, courses); err != nil {
		t.Fatalf("seed courses: %v", err)
	}

	orderList := []models.Order{
		{ID: "o_1", BuyerID: "u_b1", SellerID: "u_s1", Amount: decimal.NewFromInt(499), Status: enums.OrderStatusPending, PaymentMode: enums.PaymentModeUPI},
		{ID: "o_2", BuyerID: "u_b1", SellerID: "u_gone", Amount: decimal.NewFromInt(700), Status: enums.OrderStatusPending, PaymentMode: enums.PaymentModeUPI},
	}
	if err := orders.NewRepository(client).SaveAll(ctx, orderList); err != nil {
		t.Fatalf("seed orders: %v", err)
	}

	tipList := []models.Tip{
		{ID: "t_1", MentorID: "u_m1", Text: "older tip", CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "t_2", MentorID: "u_m1", Text: "newer tip", CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
	}
	if err := tips.NewRepository(client).SaveAll(ctx, tipList); err != nil {
		t.Fatalf("seed tips: %v", err)
	}
}

func newTestService(t *testing.T, client *store.Client) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: client})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestBuyerViewShowsOnlyPurchasable(t *testing.T) {
	client := newTestStore(t)
	fixture(t, client)
	svc := newTestService(t, client)

	view, err := svc.Buyer(context.Background(), "u_b1", "")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}

	// p_jaggery is out of stock, p_mat is unapproved; p_ghost stays visible
	// with a placeholder seller name.
	if len(view.Catalog) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(view.Catalog))
	}
	byID := map[string]CatalogEntry{}
	for _, entry := range view.Catalog {
		byID[entry.Product.ID] = entry
	}
	if byID["p_basket"].SellerName != "Ramesh" {
		t.Fatalf("expected seller name joined, got %q", byID["p_basket"].SellerName)
	}
	if byID["p_ghost"].SellerName != "unknown" {
		t.Fatalf("expected placeholder for deleted seller, got %q", byID["p_ghost"].SellerName)
	}

	if len(view.Orders) != 2 {
		t.Fatalf("expected buyer's 2 orders, got %d", len(view.Orders))
	}
}

func TestBuyerViewSearch(t *testing.T) {
	client := newTestStore(t)
	fixture(t, client)
	svc := newTestService(t, client)
	ctx := context.Background()

	view, err := svc.Buyer(ctx, "u_b1", "BASKET")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}
	if len(view.Catalog) != 1 || view.Catalog[0].Product.ID != "p_basket" {
		t.Fatalf("expected name match, got %+v", view.Catalog)
	}

	view, err = svc.Buyer(ctx, "u_b1", "ramesh")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}
	if len(view.Catalog) != 1 || view.Catalog[0].Product.ID != "p_basket" {
		t.Fatalf("expected seller-name match, got %+v", view.Catalog)
	}

	view, err = svc.Buyer(ctx, "u_b1", "bamboo")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}
	if len(view.Catalog) != 1 {
		t.Fatalf("expected description match, got %+v", view.Catalog)
	}

	view, err = svc.Buyer(ctx, "u_b1", "tractor")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}
	if len(view.Catalog) != 0 {
		t.Fatalf("expected no match, got %+v", view.Catalog)
	}
}

func TestSellerView(t *testing.T) {
	client := newTestStore(t)
	fixture(t, client)
	svc := newTestService(t, client)

	view, err := svc.Seller(context.Background(), "u_s1")
	if err != nil {
		t.Fatalf("seller view: %v", err)
	}
	if len(view.Products) != 2 {
		t.Fatalf("expected own products regardless of state, got %d", len(view.Products))
	}
	if len(view.Orders) != 1 || view.Orders[0].ID != "o_1" {
		t.Fatalf("expected own sales only, got %+v", view.Orders)
	}
	if len(view.Courses) != 1 || view.Courses[0].ID != "c_pricing" {
		t.Fatalf("expected approved courses only, got %+v", view.Courses)
	}
	if view.UPI != "ramesh@upi" {
		t.Fatalf("expected upi handle, got %q", view.UPI)
	}
	if len(view.Tips) != 2 || view.Tips[0].Text != "newer tip" {
		t.Fatalf("expected tips newest first, got %+v", view.Tips)
	}
}

func TestMentorView(t *testing.T) {
	client := newTestStore(t)
	fixture(t, client)
	svc := newTestService(t, client)

	view, err := svc.Mentor(context.Background(), "u_m1")
	if err != nil {
		t.Fatalf("mentor view: %v", err)
	}
	if len(view.Courses) != 2 {
		t.Fatalf("expected both courses incl. pending, got %d", len(view.Courses))
	}
	if len(view.Tips) != 2 {
		t.Fatalf("expected all tips, got %d", len(view.Tips))
	}
}

func TestAdminView(t *testing.T) {
	client := newTestStore(t)
	fixture(t, client)
	svc := newTestService(t, client)

	view, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if len(view.PendingUsers) != 1 || view.PendingUsers[0].ID != "u_s2" {
		t.Fatalf("expected pending seller queued, got %+v", view.PendingUsers)
	}
	if len(view.PendingProducts) != 1 || view.PendingProducts[0].ID != "p_mat" {
		t.Fatalf("expected pending product queued, got %+v", view.PendingProducts)
	}
	if len(view.PendingCourses) != 1 || view.PendingCourses[0].ID != "c_draft" {
		t.Fatalf("expected pending course queued, got %+v", view.PendingCourses)
	}
	if len(view.Orders) != 2 {
		t.Fatalf("expected full order ledger, got %d", len(view.Orders))
	}
	for _, entry := range view.Orders {
		if entry.Order.ID == "o_2" && entry.SellerName != "unknown" {
			t.Fatalf("expected placeholder for deleted seller, got %q", entry.SellerName)
		}
		if entry.BuyerName != "Priya" {
			t.Fatalf("expected buyer name resolved, got %q", entry.BuyerName)
		}
	}
}

func TestViewsOnEmptyStore(t *testing.T) {
	client := newTestStore(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	buyer, err := svc.Buyer(ctx, "u_nobody", "")
	if err != nil {
		t.Fatalf("buyer view: %v", err)
	}
	if len(buyer.Catalog) != 0 || len(buyer.Orders) != 0 {
		t.Fatalf("expected empty buyer view, got %+v", buyer)
	}

	admin, err := svc.Admin(ctx)
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if len(admin.PendingUsers) != 0 || len(admin.Orders) != 0 {
		t.Fatalf("expected empty admin view, got %+v", admin)
	}
}
