package products

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Payload is what gets serialized into the productData part.
type Payload interface {
	Kind() Type
}

// Common holds the fields every product kind sends.
type Common struct {
	ProductType Type            `json:"productType"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price_egp"`
	Stock       int             `json:"stock"`
	Status      Status          `json:"status"`
	Featured    bool            `json:"featured"`
}

type SinglePayload struct {
	Common
	NameEN        string    `json:"name_en"`
	DescriptionEN string    `json:"description_en,omitempty"`
	Size          string    `json:"size"`
	Variants      []Variant `json:"variants"`

	// Specs holds exactly the category's fields, merged into the top
	// level object on marshal.
	Specs map[Field]string `json:"-"`
}

func (SinglePayload) Kind() Type { return Single }

func (p SinglePayload) MarshalJSON() ([]byte, error) {
	type plain SinglePayload
	b, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	if len(p.Specs) == 0 {
		return b, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	for f, v := range p.Specs {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[string(f)] = enc
	}
	return json.Marshal(obj)
}

type BundlePayload struct {
	Common
	BundleName        string              `json:"bundleName"`
	BundleDescription string              `json:"bundleDescription"`
	BundleItems       []BundleItemPayload `json:"bundleItems"`
}

func (BundlePayload) Kind() Type { return Bundle }

type BundleItemPayload struct {
	SubProductName string `json:"subProductName"`
	Size           string `json:"size"`
	AllowedScents  string `json:"allowedScents"`
}

// Project reduces d to the payload for its type and category.
func Project(d Draft) (Payload, error) {
	common := Common{
		ProductType: d.Type,
		Category:    d.Category,
		Price:       d.Price,
		Stock:       d.Stock,
		Status:      d.Status,
		Featured:    d.Featured,
	}

	switch d.Type {
	case Single:
		fields, _ := FieldsFor(d.Category)
		specs := make(map[Field]string, len(fields))
		for _, f := range fields {
			specs[f] = d.Spec(f)
		}
		variants := make([]Variant, len(d.Variants))
		copy(variants, d.Variants)
		return SinglePayload{
			Common:        common,
			NameEN:        d.NameEN,
			DescriptionEN: d.DescriptionEN,
			Size:          d.Size,
			Variants:      variants,
			Specs:         specs,
		}, nil

	case Bundle:
		items := make([]BundleItemPayload, 0, len(d.BundleItems))
		for _, it := range d.BundleItems {
			items = append(items, BundleItemPayload{
				SubProductName: it.SubProductName,
				Size:           it.Size,
				AllowedScents:  JoinList(it.AllowedScents),
			})
		}
		return BundlePayload{
			Common:            common,
			BundleName:        d.BundleName,
			BundleDescription: d.BundleDescription,
			BundleItems:       items,
		}, nil
	}

	return nil, fmt.Errorf("unknown product type %q", d.Type)
}
