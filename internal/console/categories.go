package console

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sirajadmin/internal/crud"
	"sirajadmin/internal/domain/categories"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// CategoryResource is the category endpoint, plus the partial update used
// for reordering.
type CategoryResource interface {
	crud.Resource[categories.Category]
	Patch(ctx context.Context, id string, fields any) error
}

// Categories is the category list with reordering.
type Categories struct {
	*crud.List[categories.Category]
	res CategoryResource
}

func NewCategories(res CategoryResource, logger *zap.SugaredLogger) *Categories {
	msgs := crud.Simple("category", "categories")
	msgs.Invalid = "Please enter a category name"
	l := crud.New[categories.Category](res, crud.Options[categories.Category]{
		Name:     "categories",
		Messages: msgs,
		Sort:     categories.Sort,
		Validate: categories.Category.Validate,
	}, logger)
	return &Categories{List: l, res: res}
}

// NextSortOrder is the sort order offered to a new category.
func (c *Categories) NextSortOrder() int {
	return categories.NextSortOrder(c.Items())
}

// Move swaps the sort order of id with its neighbour in dir and saves
// both. Moving the first category up or the last one down does nothing.
func (c *Categories) Move(ctx context.Context, id string, dir Direction) error {
	list := c.Items()
	idx := -1
	for i, cat := range list {
		if cat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	var other int
	switch {
	case dir == Up && idx > 0:
		other = idx - 1
	case dir == Down && idx < len(list)-1:
		other = idx + 1
	case dir != Up && dir != Down:
		return errors.New("unknown direction " + string(dir))
	default:
		return nil
	}

	cur, next := list[idx], list[other]
	return c.Mutate(ctx, "Category order updated successfully", "Error updating category order", func(ctx context.Context) error {
		if err := c.res.Patch(ctx, cur.ID, categories.Order{SortOrder: next.SortOrder}); err != nil {
			return err
		}
		return c.res.Patch(ctx, next.ID, categories.Order{SortOrder: cur.SortOrder})
	})
}
