package products

import "context"

// ListFilter narrows the product listing. Zero values mean "backend default".
type ListFilter struct {
	Limit    int
	Statuses []Status
}

// Store is the product side of the backend API.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]Product, error)
	Create(ctx context.Context, p Payload, files []Upload) (*Product, error)
	Update(ctx context.Context, id string, p Payload, files []Upload) (*Product, error)
	Delete(ctx context.Context, id string) error
}
