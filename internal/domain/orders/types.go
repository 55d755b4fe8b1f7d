package orders

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Pending    Status = "Pending"
	Processing Status = "Processing"
	Shipped    Status = "Shipped"
	Delivered  Status = "Delivered"
	Cancelled  Status = "Cancelled"
)

var Statuses = []Status{Pending, Processing, Shipped, Delivered, Cancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tone is the badge colour used for the status in tables.
func (s Status) Tone() string {
	switch s {
	case Delivered:
		return "green"
	case Shipped:
		return "blue"
	case Processing:
		return "yellow"
	case Cancelled:
		return "red"
	}
	return "gray"
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

type Item struct {
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Customization []string        `json:"customization"`
}

// Order is owned by the backend; the console only reads it and moves its
// status.
type Order struct {
	ID            string          `json:"_id"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CustomerInfo  CustomerInfo    `json:"customerInfo"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        Status          `json:"status"`
}

// ShortID is the tail of the id shown to staff.
func (o Order) ShortID() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}

func (i Item) CustomizationText() string {
	return strings.Join(i.Customization, ", ")
}

type Store interface {
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
