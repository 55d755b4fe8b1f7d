package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 15
	MaxLimit     = 50
)

// Pagination is one page of an in-memory table.
//
// /products?page=2&limit=20 → ParsePagination → Pagination{Limit:20, Page:2, Offset:20}
// → Page(list, &p) slices the table and fills the metadata.
type Pagination struct {
	Limit      int
	Offset     int
	Page       int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
	// Query is the free-text filter from ?q=, trimmed.
	Query string
}

// ParsePagination reads ?limit=, ?page= and ?q=. Bad values fall back to
// the defaults.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{Limit: DefaultLimit, Page: 1}

	if s := strings.TrimSpace(q.Get("limit")); s != "" {
		if limit, err := strconv.Atoi(s); err == nil {
			switch {
			case limit <= 0:
				p.Limit = DefaultLimit
			case limit > MaxLimit:
				p.Limit = MaxLimit
			default:
				p.Limit = limit
			}
		}
	}
	if s := strings.TrimSpace(q.Get("page")); s != "" {
		if page, err := strconv.Atoi(s); err == nil && page > 0 {
			p.Page = page
		}
	}
	p.Query = strings.TrimSpace(q.Get("q"))
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills the totals. A page past the end is pulled back to the
// last page.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	p.TotalPages = 0
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	if p.TotalPages > 0 && p.Page > p.TotalPages {
		p.Page = p.TotalPages
		p.Offset = (p.Page - 1) * p.Limit
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page*p.Limit < total
}

// Page returns the rows of items on page p, after ComputeMeta.
func Page[T any](items []T, p *Pagination) []T {
	p.ComputeMeta(len(items))
	start := p.Offset
	if start > len(items) {
		start = len(items)
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Filter keeps the items whose text matches the query, case-insensitively.
// An empty query keeps everything.
func Filter[T any](items []T, query string, text func(T) string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(text(it)), query) {
			out = append(out, it)
		}
	}
	return out
}

// PageURL is the query string for page n, keeping limit and q.
func (p Pagination) PageURL(n int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(n))
	if p.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	return "?" + v.Encode()
}

func (p Pagination) PrevURL() string { return p.PageURL(p.Page - 1) }
func (p Pagination) NextURL() string { return p.PageURL(p.Page + 1) }
