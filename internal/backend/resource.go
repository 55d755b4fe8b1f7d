package backend

import (
	"context"
	"net/http"
	"net/url"

	"sirajadmin/internal/domain/care"
	"sirajadmin/internal/domain/categories"
	"sirajadmin/internal/domain/discounts"
	"sirajadmin/internal/domain/shipping"
)

// Resource is a plain JSON collection: GET lists a bare array, POST/PUT
// take the entity as the body, and any 2xx counts as success.
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (c *Client) Categories() *Resource[categories.Category] {
	return NewResource[categories.Category](c, "/api/categories")
}

func (c *Client) Discounts() *Resource[discounts.Discount] {
	return NewResource[discounts.Discount](c, "/api/discounts")
}

func (c *Client) ShippingRates() *Resource[shipping.Rate] {
	return NewResource[shipping.Rate](c, "/api/shipping-rates")
}

func (c *Client) Care() *Resource[care.Instruction] {
	return NewResource[care.Instruction](c, "/api/care")
}

func (r *Resource[T]) item(id string) string { return r.path + "/" + url.PathEscape(id) }

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	raw, _, err := r.c.send(ctx, request{method: http.MethodGet, path: r.path})
	if err != nil {
		return nil, err
	}
	var out []T
	if err := decode("GET "+r.path, raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, v T) error {
	return r.write(ctx, http.MethodPost, r.path, v)
}

func (r *Resource[T]) Update(ctx context.Context, id string, v T) error {
	return r.write(ctx, http.MethodPut, r.item(id), v)
}

// Patch sends a partial body through PUT; the backend merges the given
// fields into the stored record.
func (r *Resource[T]) Patch(ctx context.Context, id string, fields any) error {
	return r.write(ctx, http.MethodPut, r.item(id), fields)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, _, err := r.c.send(ctx, request{method: http.MethodDelete, path: r.item(id)})
	return err
}

func (r *Resource[T]) write(ctx context.Context, method, path string, body any) error {
	req, err := jsonRequest(method, path, body)
	if err != nil {
		return err
	}
	_, _, err = r.c.send(ctx, req)
	return err
}
