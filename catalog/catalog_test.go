package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ruralep/platform/identity"
	"github.com/ruralep/platform/pkg/config"
	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
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

func seedUser(t *testing.T, client *store.Client, id string, role enums.UserRole, approved bool) models.User {
	t.Helper()
	ctx := context.Background()
	repo := identity.NewRepository(client)
	users, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	user := models.User{
		ID:       id,
		Name:     id,
		Email:    id + "@rep.local",
		Role:     role,
		Approved: approved,
	}
	if err := repo.SaveAll(ctx, append(users, user)); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newProductService(t *testing.T, client *store.Client) ProductService {
	t.Helper()
	svc, err := NewProductService(ProductServiceParams{Store: client})
	if err != nil {
		t.Fatalf("new product service: %v", err)
	}
	return svc
}

func newCourseService(t *testing.T, client *store.Client) CourseService {
	t.Helper()
	svc, err := NewCourseService(CourseServiceParams{Store: client})
	if err != nil {
		t.Fatalf("new course service: %v", err)
	}
	return svc
}

func basketInput() ProductInput {
	return ProductInput{
		Name:  "Handwoven Basket",
		Price: decimal.NewFromInt(499),
		Stock: 25,
	}
}

func TestSubmitProductStartsPending(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	svc := newProductService(t, client)

	product, err := svc.Submit(context.Background(), "u_seller", basketInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if product.Approved {
		t.Fatal("expected new product to await approval")
	}
	if product.SellerID != "u_seller" {
		t.Fatalf("expected ownership assigned, got %q", product.SellerID)
	}
	if product.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp set")
	}
}

func TestSubmitProductRequiresApprovedSeller(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_pending", enums.UserRoleSeller, false)
	seedUser(t, client, "u_buyer", enums.UserRoleBuyer, true)
	svc := newProductService(t, client)

	_, err := svc.Submit(context.Background(), "u_pending", basketInput())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for unapproved seller, got %v", err)
	}
	_, err = svc.Submit(context.Background(), "u_buyer", basketInput())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for wrong role, got %v", err)
	}
}

func TestSubmitProductRejectsNonPositivePrice(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	svc := newProductService(t, client)

	input := basketInput()
	input.Price = decimal.Zero
	_, err := svc.Submit(context.Background(), "u_seller", input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestApproveProductMakesItVisible(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	seedUser(t, client, "u_admin", enums.UserRoleAdmin, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	product, err := svc.Submit(ctx, "u_seller", basketInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	visible, err := svc.Visible(ctx)
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected pending product hidden, got %d", len(visible))
	}

	if err := svc.Approve(ctx, "u_seller", product.ID); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-admin approve, got %v", err)
	}
	if err := svc.Approve(ctx, "u_admin", product.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	visible, err = svc.Visible(ctx)
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != product.ID {
		t.Fatalf("expected approved product visible, got %v", visible)
	}
}

func TestOutOfStockProductIsHidden(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	seedUser(t, client, "u_admin", enums.UserRoleAdmin, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	input := basketInput()
	input.Stock = 1
	product, err := svc.Submit(ctx, "u_seller", input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Approve(ctx, "u_admin", product.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	updated, err := svc.AdjustStock(ctx, "u_seller", product.ID, -1)
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", updated.Stock)
	}

	visible, err := svc.Visible(ctx)
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected out-of-stock product hidden, got %d", len(visible))
	}
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	input := basketInput()
	input.Stock = 2
	product, err := svc.Submit(ctx, "u_seller", input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.AdjustStock(ctx, "u_seller", product.ID, -10)
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.Stock != 0 {
		t.Fatalf("expected stock clamped at 0, got %d", updated.Stock)
	}
}

func TestRejectProductDeletesIt(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	seedUser(t, client, "u_admin", enums.UserRoleAdmin, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	product, err := svc.Submit(ctx, "u_seller", basketInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Reject(ctx, "u_admin", product.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	owned, err := svc.BySeller(ctx, "u_seller")
	if err != nil {
		t.Fatalf("by seller: %v", err)
	}
	if len(owned) != 0 {
		t.Fatalf("expected rejected product deleted, got %d", len(owned))
	}
}

func TestModerateMissingProductIsNoOp(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_admin", enums.UserRoleAdmin, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	if err := svc.Approve(ctx, "u_admin", "p_missing"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if err := svc.Reject(ctx, "u_admin", "p_missing"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestPatchProductOwnership(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_seller", enums.UserRoleSeller, true)
	seedUser(t, client, "u_other", enums.UserRoleSeller, true)
	svc := newProductService(t, client)
	ctx := context.Background()

	product, err := svc.Submit(ctx, "u_seller", basketInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	name := "Bamboo Basket"
	_, err = svc.Patch(ctx, "u_other", product.ID, ProductPatch{Name: &name})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}

	price := decimal.NewFromInt(550)
	updated, err := svc.Patch(ctx, "u_seller", product.ID, ProductPatch{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.Name != name || !updated.Price.Equal(price) {
		t.Fatalf("expected patched fields applied, got %+v", updated)
	}
	if updated.Stock != 25 {
		t.Fatalf("expected untouched fields preserved, got stock %d", updated.Stock)
	}
}

func courseInput() CourseInput {
	return CourseInput{
		Title:  "Pricing Your Produce",
		Level:  enums.CourseLevelBeginner,
		Format: enums.CourseFormatVideo,
		URL:    "https://learn.rep.local/pricing",
	}
}

func TestSubmitCourseRequiresApprovedMentor(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_mentor", enums.UserRoleMentor, true)
	seedUser(t, client, "u_pending", enums.UserRoleMentor, false)
	svc := newCourseService(t, client)
	ctx := context.Background()

	course, err := svc.Submit(ctx, "u_mentor", courseInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if course.Approved {
		t.Fatal("expected new course to await approval")
	}

	_, err = svc.Submit(ctx, "u_pending", courseInput())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestReturnCourseToPendingKeepsRecord(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_mentor", enums.UserRoleMentor, true)
	seedUser(t, client, "u_admin", enums.UserRoleAdmin, true)
	svc := newCourseService(t, client)
	ctx := context.Background()

	course, err := svc.Submit(ctx, "u_mentor", courseInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Approve(ctx, "u_admin", course.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	visible, err := svc.Visible(ctx)
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected course visible after approval, got %d", len(visible))
	}

	if err := svc.ReturnToPending(ctx, "u_admin", course.ID); err != nil {
		t.Fatalf("return to pending: %v", err)
	}

	visible, err = svc.Visible(ctx)
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected course hidden again, got %d", len(visible))
	}

	owned, err := svc.ByMentor(ctx, "u_mentor")
	if err != nil {
		t.Fatalf("by mentor: %v", err)
	}
	if len(owned) != 1 {
		t.Fatal("expected course record kept, not deleted")
	}
}

func TestRemoveCourseOwnerOrAdmin(t *testing.T) {
	client := newTestStore(t)
	seedUser(t, client, "u_mentor", enums.UserRoleMentor, true)
	seedUser(t, client, "u_other", enums.UserRoleMentor, true)
	svc := newCourseService(t, client)
	ctx := context.Background()

	course, err := svc.Submit(ctx, "u_mentor", courseInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Remove(ctx, "u_other", course.ID); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}
	if err := svc.Remove(ctx, "u_mentor", course.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	owned, err := svc.ByMentor(ctx, "u_mentor")
	if err != nil {
		t.Fatalf("by mentor: %v", err)
	}
	if len(owned) != 0 {
		t.Fatalf("expected course removed, got %d", len(owned))
	}
}
