package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/domain/categories"
	"sirajadmin/internal/domain/orders"
)

func TestOrders_UpdateStatus(t *testing.T) {
	store := &fakeOrders{list: []orders.Order{{ID: "65f0c0ffee1234abcdef", Status: orders.Pending}}}
	o := NewOrders(store, nil)
	o.Refresh(context.Background())

	ctx := context.Background()
	if err := o.UpdateStatus(ctx, "65f0c0ffee1234abcdef", "Lost", true); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := o.UpdateStatus(ctx, "65f0c0ffee1234abcdef", orders.Shipped, false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("err = %v", err)
	}
	if len(store.updated) != 0 {
		t.Fatalf("unconfirmed change reached the backend: %v", store.updated)
	}

	if err := o.UpdateStatus(ctx, "65f0c0ffee1234abcdef", orders.Shipped, true); err != nil {
		t.Fatalf("update: %v", err)
	}
	v := o.View()
	if v.Orders[0].Status != orders.Shipped || v.Message != "Order abcdef status updated." {
		t.Fatalf("view = %+v", v)
	}
}

func TestOrders_UpdateStatusFailure(t *testing.T) {
	store := &fakeOrders{updateErr: &backend.APIError{Status: 400, Message: "Invalid transition"}}
	o := NewOrders(store, nil)

	o.UpdateStatus(context.Background(), "o1", orders.Delivered, true)
	if msg := o.View().Message; msg != "Error updating order: Invalid transition" {
		t.Fatalf("message = %q", msg)
	}
}

func TestOrders_OpenAndClose(t *testing.T) {
	o := NewOrders(&fakeOrders{list: []orders.Order{{ID: "o1"}}}, nil)
	o.Refresh(context.Background())

	if err := o.Open("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	o.Open("o1")
	if sel := o.View().Selected; sel == nil || sel.ID != "o1" {
		t.Fatalf("selected = %v", sel)
	}
	o.Close()
	if o.View().Selected != nil {
		t.Fatal("expected no selection")
	}
}

func TestStatusPrompt(t *testing.T) {
	got := StatusPrompt(orders.Order{ID: "65f0c0ffee1234abcdef"}, orders.Delivered)
	if got != `Update order abcdef status to "Delivered"?` {
		t.Fatalf("prompt = %q", got)
	}
}

func TestCategories_MoveUpSwapsWithPredecessor(t *testing.T) {
	res := &fakeCategories{list: []categories.Category{
		{ID: "a", Name: "Candles", SortOrder: 0},
		{ID: "b", Name: "Soap", SortOrder: 1},
		{ID: "c", Name: "Sets", SortOrder: 2},
	}}
	c := NewCategories(res, nil)
	ctx := context.Background()
	c.Load(ctx)

	if err := c.Move(ctx, "b", Up); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := strings.Join(res.patches, "; "); got != `b {"sortOrder":0}; a {"sortOrder":1}` {
		t.Fatalf("patches = %s", got)
	}
	items := c.Items()
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("order = %v", categories.Names(items))
	}
	if c.Message() != "Category order updated successfully" {
		t.Fatalf("message = %q", c.Message())
	}
}

func TestCategories_MoveAtEdgesIsNoop(t *testing.T) {
	res := &fakeCategories{list: []categories.Category{
		{ID: "a", Name: "Candles", SortOrder: 0},
		{ID: "b", Name: "Soap", SortOrder: 1},
	}}
	c := NewCategories(res, nil)
	ctx := context.Background()
	c.Load(ctx)

	c.Move(ctx, "a", Up)
	c.Move(ctx, "b", Down)
	if len(res.patches) != 0 {
		t.Fatalf("patches = %v", res.patches)
	}
	if err := c.Move(ctx, "zz", Up); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if c.NextSortOrder() != 2 {
		t.Fatalf("next sort order = %d", c.NextSortOrder())
	}
}

func TestCategories_BlankNameRejected(t *testing.T) {
	res := &fakeCategories{}
	c := NewCategories(res, nil)

	if err := c.Create(context.Background(), categories.Category{Name: ""}); err == nil {
		t.Fatal("expected validation error")
	}
	if c.Message() != "Please enter a category name" {
		t.Fatalf("message = %q", c.Message())
	}
	if len(res.list) != 0 {
		t.Fatal("invalid category reached the backend")
	}
}
