// Package console holds the per-session state of the admin console: the
// product form, the order viewer and the simple collection managers.
package console

import (
	"go.uber.org/zap"

	"sirajadmin/internal/crud"
	"sirajadmin/internal/domain/care"
	"sirajadmin/internal/domain/discounts"
	"sirajadmin/internal/domain/orders"
	"sirajadmin/internal/domain/products"
	"sirajadmin/internal/domain/shipping"
)

var (
	ErrBusy         = crud.ErrBusy
	ErrNotConfirmed = crud.ErrNotConfirmed
	ErrNotFound     = crud.ErrNotFound
)

// Backend is everything a workspace calls out to.
type Backend struct {
	Products   products.Store
	Orders     orders.Store
	Categories CategoryResource
	Discounts  crud.Resource[discounts.Discount]
	Shipping   crud.Resource[shipping.Rate]
	Care       crud.Resource[care.Instruction]
}

// Workspace is one staff member's console. Nothing in it outlives the
// session.
type Workspace struct {
	Products   *ProductForm
	Orders     *Orders
	Categories *Categories
	Discounts  *crud.List[discounts.Discount]
	Shipping   *crud.List[shipping.Rate]
	Care       *crud.List[care.Instruction]
}

func NewWorkspace(b Backend, logger *zap.SugaredLogger) *Workspace {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	shippingMsgs := crud.Messages{
		LoadFailed:   "Error loading shipping rates",
		Invalid:      "Please fill in both city and shipping fee",
		Created:      "Shipping rate added successfully",
		Updated:      "Shipping rate updated successfully",
		Deleted:      "Shipping rate deleted successfully",
		CreateFailed: "Error adding shipping rate",
		UpdateFailed: "Error updating shipping rate",
		DeleteFailed: "Error deleting shipping rate",
	}
	careMsgs := crud.Simple("care instructions", "care instructions")
	careMsgs.Invalid = "Please fill in all fields"

	return &Workspace{
		Products:   NewProductForm(b.Products, logger.With("page", "products")),
		Orders:     NewOrders(b.Orders, logger.With("page", "orders")),
		Categories: NewCategories(b.Categories, logger.With("page", "categories")),
		Discounts: crud.New[discounts.Discount](b.Discounts, crud.Options[discounts.Discount]{
			Name:     "discounts",
			Messages: crud.Simple("discount", "discounts"),
			Validate: discounts.Discount.Validate,
		}, logger.With("page", "discounts")),
		Shipping: crud.New[shipping.Rate](b.Shipping, crud.Options[shipping.Rate]{
			Name:     "shipping",
			Messages: shippingMsgs,
			Validate: shipping.Rate.Validate,
		}, logger.With("page", "shipping")),
		Care: crud.New[care.Instruction](b.Care, crud.Options[care.Instruction]{
			Name:     "care",
			Messages: careMsgs,
			Validate: care.Instruction.Validate,
		}, logger.With("page", "care")),
	}
}
