package categories

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Category struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name" validate:"required,max=80"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

func (c Category) Key() string { return c.ID }

func (c Category) Validate() error { return validate.Struct(c) }

// Order is the sort-only update sent when two categories swap places.
type Order struct {
	SortOrder int `json:"sortOrder"`
}

// Sort orders categories by SortOrder, keeping the backend order for ties.
func Sort(list []Category) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
}

// NextSortOrder is the position a new category takes: after the last one.
func NextSortOrder(list []Category) int {
	if len(list) == 0 {
		return 0
	}
	max := list[0].SortOrder
	for _, c := range list[1:] {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max + 1
}

// Names returns the category names in list order.
func Names(list []Category) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return out
}
