package categories

import (
	"strings"
	"testing"
)

func TestSortKeepsTies(t *testing.T) {
	list := []Category{
		{Name: "Soap", SortOrder: 2},
		{Name: "Candles", SortOrder: 0},
		{Name: "Sets", SortOrder: 2},
		{Name: "Melts", SortOrder: 1},
	}
	Sort(list)
	if got := strings.Join(Names(list), ","); got != "Candles,Melts,Soap,Sets" {
		t.Fatalf("order = %s", got)
	}
}

func TestNextSortOrder(t *testing.T) {
	if got := NextSortOrder(nil); got != 0 {
		t.Fatalf("empty = %d", got)
	}
	if got := NextSortOrder([]Category{{SortOrder: 4}, {SortOrder: 1}}); got != 5 {
		t.Fatalf("next = %d", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (Category{Name: "Candles"}).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (Category{Name: ""}).Validate(); err == nil {
		t.Fatal("blank name must fail")
	}
	if err := (Category{Name: "x", SortOrder: -1}).Validate(); err == nil {
		t.Fatal("negative sort order must fail")
	}
}
