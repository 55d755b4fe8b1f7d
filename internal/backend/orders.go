package backend

import (
	"context"
	"net/http"
	"net/url"

	"sirajadmin/internal/domain/orders"
)

type OrderStore struct {
	c *Client
}

func (c *Client) Orders() *OrderStore { return &OrderStore{c: c} }

var _ orders.Store = (*OrderStore)(nil)

func (s *OrderStore) List(ctx context.Context) ([]orders.Order, error) {
	raw, _, err := s.c.send(ctx, request{method: http.MethodGet, path: "/api/orders"})
	if err != nil {
		return nil, err
	}
	var out []orders.Order
	if err := decode("GET /api/orders", raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []orders.Order{}
	}
	return out, nil
}

// UpdateStatus succeeds only when the reply carries the updated order.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status orders.Status) (*orders.Order, error) {
	path := "/api/orders/" + url.PathEscape(id) + "/status"
	req, err := jsonRequest(http.MethodPut, path, map[string]orders.Status{"status": status})
	if err != nil {
		return nil, err
	}
	raw, code, err := s.c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Order *orders.Order `json:"order"`
	}
	if err := decode("PUT "+path, raw, &out); err != nil {
		return nil, err
	}
	if out.Order == nil {
		return nil, &APIError{Status: code, Message: firstNonEmpty(out.Message, out.Error)}
	}
	return out.Order, nil
}
