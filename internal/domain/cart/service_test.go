package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

func TestCreateCartSecondActiveIsConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.CreateCart(ctx, userID); err != nil {
		t.Fatalf("first CreateCart: %v", err)
	}
	_, err := svc.CreateCart(ctx, userID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("second CreateCart err = %v, want Conflict", err)
	}
}

func TestGetCartMissingIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetCart(context.Background(), uuid.New())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestGetActiveCartByUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateCart(ctx, userID)
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}

	got, err := svc.GetActiveCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetActiveCart: %v", err)
	}
	if got.CartID != created.CartID {
		t.Errorf("GetActiveCart returned cart %s, want %s", got.CartID, created.CartID)
	}

	if _, err := svc.GetActiveCart(ctx, uuid.New()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("GetActiveCart for unknown user err = %v, want NotFound", err)
	}
}

func TestUpdateCartValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cartID := createCart(t, svc)

	if _, err := svc.UpdateCart(ctx, cartID, &UpdateCartRequest{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("empty patch err = %v, want Validation", err)
	}

	bad := "parked"
	if _, err := svc.UpdateCart(ctx, cartID, &UpdateCartRequest{Status: &bad}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("unknown status err = %v, want Validation", err)
	}

	neg := mustDec(t, "-5.00")
	if _, err := svc.UpdateCart(ctx, cartID, &UpdateCartRequest{Total: &neg}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("negative total err = %v, want Validation", err)
	}
}

func TestUpdateCartAdministrativeOverride(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cartID := createCart(t, svc)

	status := StatusCheckedOut
	total := mustDec(t, "42.00")
	updated, err := svc.UpdateCart(ctx, cartID, &UpdateCartRequest{Status: &status, Total: &total})
	if err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}
	if updated.Status != StatusCheckedOut {
		t.Errorf("status = %q, want %q", updated.Status, StatusCheckedOut)
	}
	if !updated.Total.Equal(total) {
		t.Errorf("total = %s, want 42.00", updated.Total)
	}
}

func TestDeleteCartLeavesItems(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	cartID := createCart(t, svc)

	if _, err := svc.AddItem(ctx, cartID, &AddItemRequest{
		ProductID: uuid.New(),
		Quantity:  1,
		UnitPrice: mustDec(t, "1.00"),
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := svc.DeleteCart(ctx, cartID); err != nil {
		t.Fatalf("DeleteCart: %v", err)
	}

	// Cart deletion does not cascade to items; clearing is the caller's job.
	if len(st.items) != 1 {
		t.Errorf("cart delete cascaded to items, %d rows left", len(st.items))
	}

	if err := svc.DeleteCart(ctx, cartID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("second DeleteCart err = %v, want NotFound", err)
	}
}

func TestListItemsPreservesCreationOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	cartID := createCart(t, svc)

	var want []uuid.UUID
	for i := 0; i < 4; i++ {
		p := uuid.New()
		want = append(want, p)
		if _, err := svc.AddItem(ctx, cartID, &AddItemRequest{ProductID: p, Quantity: 1, UnitPrice: mustDec(t, "1.00")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	items, err := svc.ListItems(ctx, cartID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range items {
		if items[i].ProductID != want[i] {
			t.Errorf("item %d product = %s, want %s", i, items[i].ProductID, want[i])
		}
	}
}
