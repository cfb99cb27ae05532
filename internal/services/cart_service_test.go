package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"food_ordering/internal/models"
	"food_ordering/internal/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartFixture struct {
	db       *gorm.DB
	svc      CartService
	customer *models.User
	other    *models.User
	pizza    *models.MenuItem
	soda     *models.MenuItem
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleOwner)
	restaurant := testutil.CreateRestaurant(t, db, owner.ID, "Luigi's")
	return &cartFixture{
		db:       db,
		svc:      NewCartService(db, testLogger()),
		customer: testutil.CreateUser(t, db, "alice@example.com", models.RoleCustomer),
		other:    testutil.CreateUser(t, db, "bob@example.com", models.RoleCustomer),
		pizza:    testutil.CreateMenuItem(t, db, restaurant.ID, "Pizza", "5.00"),
		soda:     testutil.CreateMenuItem(t, db, restaurant.ID, "Soda", "3.00"),
	}
}

func (f *cartFixture) storedQuantity(t *testing.T, itemID uint) int {
	t.Helper()
	var item models.CartItem
	if err := f.db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load cart item %d: %v", itemID, err)
	}
	return item.Quantity
}

func TestGetCart_CreatesOnce(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	first, err := f.svc.GetCart(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	second, err := f.svc.GetCart(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same cart, got %d and %d", first.ID, second.ID)
	}
	if !first.IsEmpty() || !first.TotalPrice().IsZero() {
		t.Errorf("expected empty cart, got %+v", first)
	}

	var count int64
	f.db.Model(&models.Cart{}).Where("customer_id = ?", f.customer.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected one cart row, got %d", count)
	}
}

func TestAddItem_SameItemTwiceMerges(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2)); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	line, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(3))
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}
	if line.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", line.Quantity)
	}

	cart, err := f.svc.GetCart(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("expected stored quantity 5, got %d", cart.Items[0].Quantity)
	}
	if !cart.TotalPrice().Equal(decimal.RequireFromString("25")) {
		t.Errorf("expected total 25, got %s", cart.TotalPrice())
	}
}

func TestAddItem_DefaultsToOne(t *testing.T) {
	f := newCartFixture(t)
	line, err := f.svc.AddItem(context.Background(), f.customer.ID, f.soda.ID, nil)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if line.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", line.Quantity)
	}
	if !line.Price.Equal(decimal.RequireFromString("3")) {
		t.Errorf("expected snapshot price 3, got %s", line.Price)
	}
}

func TestAddItem_Rejections(t *testing.T) {
	f := newCartFixture(t)
	unavailable := testutil.CreateMenuItem(t, f.db, f.pizza.RestaurantID, "Seasonal", "9.00")
	f.db.Model(unavailable).Update("is_available", false)

	tests := []struct {
		name     string
		menuID   uint
		quantity *int
		field    string
	}{
		{"missing menu", 0, intPtr(1), "menu"},
		{"unknown menu", 9999, intPtr(1), "menu"},
		{"zero quantity", f.pizza.ID, intPtr(0), "quantity"},
		{"negative quantity", f.pizza.ID, intPtr(-2), "quantity"},
		{"unavailable item", unavailable.ID, intPtr(1), "menu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddItem(context.Background(), f.customer.ID, tt.menuID, tt.quantity)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	var count int64
	f.db.Model(&models.CartItem{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no cart items after rejected adds, got %d", count)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	line, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := f.svc.UpdateItemQuantity(ctx, f.customer.ID, line.ID, intPtr(4))
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if updated.Quantity != 4 || f.storedQuantity(t, line.ID) != 4 {
		t.Errorf("expected quantity 4, got %d (stored %d)", updated.Quantity, f.storedQuantity(t, line.ID))
	}
}

func TestUpdateItemQuantity_NegativeRejectedWithoutChange(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	line, _ := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2))

	for _, q := range []*int{intPtr(-1), nil} {
		_, err := f.svc.UpdateItemQuantity(ctx, f.customer.ID, line.ID, q)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "quantity" {
			t.Errorf("expected quantity ValidationError, got %v", err)
		}
	}
	if got := f.storedQuantity(t, line.ID); got != 2 {
		t.Errorf("stored quantity changed to %d", got)
	}
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	line, _ := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2))

	item, err := f.svc.UpdateItemQuantity(ctx, f.customer.ID, line.ID, intPtr(0))
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil item after zero quantity, got %+v", item)
	}

	cart, _ := f.svc.GetCart(ctx, f.customer.ID)
	if !cart.IsEmpty() {
		t.Errorf("expected empty cart, got %d lines", len(cart.Items))
	}
}

func TestCartItem_OtherCustomerSeesNotFound(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	line, _ := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2))
	// the intruder has a cart of their own
	if _, err := f.svc.AddItem(ctx, f.other.ID, f.soda.ID, intPtr(1)); err != nil {
		t.Fatalf("AddItem for other: %v", err)
	}

	if _, err := f.svc.UpdateItemQuantity(ctx, f.other.ID, line.ID, intPtr(9)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on patch, got %v", err)
	}
	if err := f.svc.RemoveItem(ctx, f.other.ID, line.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
	if got := f.storedQuantity(t, line.ID); got != 2 {
		t.Errorf("foreign request mutated quantity to %d", got)
	}
}

func TestRemoveItem(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	line, _ := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(1))

	if err := f.svc.RemoveItem(ctx, f.customer.ID, line.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := f.svc.RemoveItem(ctx, f.customer.ID, line.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestClearCart_KeepsCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(1))
	f.svc.AddItem(ctx, f.customer.ID, f.soda.ID, intPtr(1))
	before, _ := f.svc.GetCart(ctx, f.customer.ID)

	if err := f.svc.ClearCart(ctx, f.customer.ID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	after, err := f.svc.GetCart(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if after.ID != before.ID {
		t.Errorf("expected cart %d to survive clear, got %d", before.ID, after.ID)
	}
	if !after.IsEmpty() {
		t.Errorf("expected no items, got %d", len(after.Items))
	}
}

func TestAddItem_QuantityLimit(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(models.MaxItemQuantity))
	if err != nil {
		t.Fatalf("AddItem at the limit: %v", err)
	}

	tests := []struct {
		name     string
		quantity int
	}{
		{"merge past the limit", 1},
		{"merge that would overflow int", math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(tt.quantity))
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != "quantity" {
				t.Fatalf("expected quantity validation error, got %v", err)
			}
			if got := f.storedQuantity(t, line.ID); got != models.MaxItemQuantity {
				t.Errorf("rejected add changed quantity to %d", got)
			}
		})
	}

	if _, err := f.svc.AddItem(ctx, f.customer.ID, f.soda.ID, intPtr(models.MaxItemQuantity+1)); err == nil {
		t.Error("expected a new line above the limit to be rejected")
	}

	cart, err := f.svc.GetCart(ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 1 || !cart.TotalPrice().Equal(decimal.NewFromInt(5*models.MaxItemQuantity)) {
		t.Errorf("unexpected cart after rejected adds: %d items, total %s", len(cart.Items), cart.TotalPrice())
	}
}

func TestUpdateItemQuantity_AboveLimitRejected(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	line, err := f.svc.AddItem(ctx, f.customer.ID, f.pizza.ID, intPtr(2))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	for _, qty := range []int{models.MaxItemQuantity + 1, math.MaxInt} {
		_, err := f.svc.UpdateItemQuantity(ctx, f.customer.ID, line.ID, intPtr(qty))
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "quantity" {
			t.Errorf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
	if got := f.storedQuantity(t, line.ID); got != 2 {
		t.Errorf("rejected update changed quantity to %d", got)
	}

	if _, err := f.svc.UpdateItemQuantity(ctx, f.customer.ID, line.ID, intPtr(models.MaxItemQuantity)); err != nil {
		t.Errorf("expected the limit itself to be accepted, got %v", err)
	}
}
