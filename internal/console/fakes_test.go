package console

import (
	"context"
	"encoding/json"
	"sync"

	"sirajadmin/internal/domain/categories"
	"sirajadmin/internal/domain/orders"
	"sirajadmin/internal/domain/products"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type productCall struct {
	Op      string
	ID      string
	Payload products.Payload
	Files   int
}

type fakeProducts struct {
	mu      sync.Mutex
	list    []products.Product
	calls   []productCall
	saveErr error
	delErr  error
	listErr error
}

func (f *fakeProducts) record(c productCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeProducts) List(ctx context.Context, _ products.ListFilter) ([]products.Product, error) {
	f.record(productCall{Op: "list"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]products.Product(nil), f.list...), nil
}

func (f *fakeProducts) Create(ctx context.Context, p products.Payload, files []products.Upload) (*products.Product, error) {
	f.record(productCall{Op: "create", Payload: p, Files: len(files)})
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return savedFrom(p), nil
}

func (f *fakeProducts) Update(ctx context.Context, id string, p products.Payload, files []products.Upload) (*products.Product, error) {
	f.record(productCall{Op: "update", ID: id, Payload: p, Files: len(files)})
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	saved := savedFrom(p)
	saved.ID = id
	return saved, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error {
	f.record(productCall{Op: "delete", ID: id})
	return f.delErr
}

func (f *fakeProducts) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Op)
	}
	return out
}

// savedFrom echoes a payload back the way the backend would store it.
func savedFrom(p products.Payload) *products.Product {
	b, _ := json.Marshal(p)
	var out products.Product
	json.Unmarshal(b, &out)
	out.ID = "new-id"
	return &out
}

type fakeOrders struct {
	list      []orders.Order
	updated   []string
	updateErr error
}

func (f *fakeOrders) List(ctx context.Context) ([]orders.Order, error) {
	return append([]orders.Order(nil), f.list...), nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id string, s orders.Status) (*orders.Order, error) {
	f.updated = append(f.updated, id+"="+string(s))
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Status = s
			o := f.list[i]
			return &o, nil
		}
	}
	return &orders.Order{ID: id, Status: s}, nil
}

type fakeCategories struct {
	mu      sync.Mutex
	list    []categories.Category
	patches []string
}

func (f *fakeCategories) List(ctx context.Context) ([]categories.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]categories.Category(nil), f.list...), nil
}

func (f *fakeCategories) Create(ctx context.Context, c categories.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = c.Name
	f.list = append(f.list, c)
	return nil
}

func (f *fakeCategories) Update(ctx context.Context, id string, c categories.Category) error {
	return f.Patch(ctx, id, categories.Order{SortOrder: c.SortOrder})
}

func (f *fakeCategories) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeCategories) Patch(ctx context.Context, id string, fields any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, _ := json.Marshal(fields)
	f.patches = append(f.patches, id+" "+string(b))
	var o categories.Order
	json.Unmarshal(b, &o)
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].SortOrder = o.SortOrder
		}
	}
	return nil
}
