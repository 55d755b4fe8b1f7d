package console

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/domain/orders"
)

// Orders is the order table with an optional open detail view.
type Orders struct {
	store  orders.Store
	logger *zap.SugaredLogger

	mu       sync.Mutex
	list     []orders.Order
	loaded   bool
	selected string
	message  string
	inFlight bool
}

func NewOrders(store orders.Store, logger *zap.SugaredLogger) *Orders {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Orders{store: store, logger: logger}
}

func (o *Orders) Refresh(ctx context.Context) error {
	list, err := o.store.List(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.loaded = true
	if err != nil {
		o.logger.Errorw("error fetching orders", "error", err)
		o.list = nil
		o.message = "Error: Could not load orders. " + fetchFailure(err, "orders")
		return err
	}
	o.list = list
	return nil
}

func (o *Orders) Loaded() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loaded
}

func (o *Orders) SetMessage(msg string) {
	o.mu.Lock()
	o.message = msg
	o.mu.Unlock()
}

func (o *Orders) Find(id string) (orders.Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.find(id)
}

func (o *Orders) find(id string) (orders.Order, bool) {
	for _, ord := range o.list {
		if ord.ID == id {
			return ord, true
		}
	}
	return orders.Order{}, false
}

// Open selects an order for the detail view.
func (o *Orders) Open(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.find(id); !ok {
		return ErrNotFound
	}
	o.selected = id
	return nil
}

func (o *Orders) Close() {
	o.mu.Lock()
	o.selected = ""
	o.mu.Unlock()
}

// StatusPrompt is the question asked before an order changes status.
func StatusPrompt(ord orders.Order, status orders.Status) string {
	return fmt.Sprintf("Update order %s status to %q?", ord.ShortID(), status)
}

// UpdateStatus moves an order to status and reloads the table.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status orders.Status, confirmed bool) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return ErrBusy
	}
	o.inFlight = true
	o.mu.Unlock()

	updated, err := o.store.UpdateStatus(ctx, id, status)

	o.mu.Lock()
	o.inFlight = false
	if err != nil {
		if backend.IsNetwork(err) {
			o.message = fmt.Sprintf("Network Error: %s.", err)
		} else {
			o.message = "Error updating order: " + backend.Describe(err, "Status %d")
		}
		o.mu.Unlock()
		o.logger.Warnw("order update error", "id", id, "status", status, "error", err)
		return err
	}
	o.message = fmt.Sprintf("Order %s status updated.", updated.ShortID())
	o.mu.Unlock()

	o.logger.Infow("order status updated", "id", id, "status", status)
	o.Refresh(ctx)
	return nil
}

type OrdersView struct {
	Orders   []orders.Order
	Loaded   bool
	Selected *orders.Order
	Message  string
	Busy     bool
}

func (o *Orders) View() OrdersView {
	o.mu.Lock()
	defer o.mu.Unlock()
	v := OrdersView{
		Orders:  append([]orders.Order(nil), o.list...),
		Loaded:  o.loaded,
		Message: o.message,
		Busy:    o.inFlight,
	}
	if ord, ok := o.find(o.selected); ok && o.selected != "" {
		v.Selected = &ord
	}
	return v
}
