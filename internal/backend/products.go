package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"sirajadmin/internal/domain/products"
)

const (
	productImagesField = "productImages"
	productDataField   = "productData"
)

// ProductStore implements products.Store over /api/products.
type ProductStore struct {
	c *Client
}

func (c *Client) Products() *ProductStore { return &ProductStore{c: c} }

var _ products.Store = (*ProductStore)(nil)

func (s *ProductStore) List(ctx context.Context, f products.ListFilter) ([]products.Product, error) {
	q := url.Values{}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	for _, st := range f.Statuses {
		q.Add("status", string(st))
	}

	raw, _, err := s.c.send(ctx, request{method: http.MethodGet, path: "/api/products", query: q})
	if err != nil {
		return nil, err
	}

	var out struct {
		Results []products.Product `json:"results"`
	}
	if err := decode("GET /api/products", raw, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []products.Product{}
	}
	return out.Results, nil
}

func (s *ProductStore) Create(ctx context.Context, p products.Payload, files []products.Upload) (*products.Product, error) {
	return s.save(ctx, http.MethodPost, "/api/products", p, files)
}

func (s *ProductStore) Update(ctx context.Context, id string, p products.Payload, files []products.Upload) (*products.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("update product: empty id")
	}
	return s.save(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), p, files)
}

func (s *ProductStore) save(ctx context.Context, method, path string, p products.Payload, files []products.Upload) (*products.Product, error) {
	body, contentType, err := encodeProductForm(p, files)
	if err != nil {
		return nil, err
	}

	raw, status, err := s.c.send(ctx, request{method: method, path: path, body: body, contentType: contentType})
	if err != nil {
		return nil, err
	}
	op := method + " " + path
	if err := checkSuccess(op, raw, status); err != nil {
		return nil, err
	}

	var out struct {
		Product *products.Product `json:"product"`
	}
	if err := decode(op, raw, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		out.Product = &products.Product{}
	}
	s.c.logger.Infow("product saved", "method", method, "id", out.Product.ID, "images", len(files))
	return out.Product, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	path := "/api/products/" + url.PathEscape(id)
	raw, status, err := s.c.send(ctx, request{method: http.MethodDelete, path: path})
	if err != nil {
		return err
	}
	return checkSuccess("DELETE "+path, raw, status)
}

// encodeProductForm builds the multipart body: one productImages part per
// new file and the projected record as JSON in productData.
func encodeProductForm(p products.Payload, files []products.Upload) (*bytes.Buffer, string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, "", fmt.Errorf("encode product data: %w", err)
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, productImagesField, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := mw.WriteField(productDataField, string(data)); err != nil {
		return nil, "", fmt.Errorf("write product data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}
