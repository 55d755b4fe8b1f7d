package products

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Single Type = "Single"
	Bundle Type = "Bundle"
)

func (t Type) Valid() bool { return t == Single || t == Bundle }

type Status string

const (
	Active   Status = "Active"
	Inactive Status = "Inactive"
)

func (s Status) Valid() bool { return s == Active || s == Inactive }

const (
	MaxBundleItems = 10
	MaxUploads     = 5
)

// BundleItem is one member of a bundle. AllowedScents is kept as a list
// while editing and joined only when the payload is built.
type BundleItem struct {
	SubProductName string   `json:"subProductName"`
	Size           string   `json:"size"`
	AllowedScents  []string `json:"allowedScents"`
}

func newBundleItem(name string) BundleItem {
	return BundleItem{SubProductName: name, AllowedScents: []string{"Vanilla Cookie"}}
}

// Variant overrides the flat price and stock of a single product.
type Variant struct {
	VariantName string          `json:"variantName"`
	VariantType string          `json:"variantType"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku,omitempty"`
}

var VariantTypes = []string{"weight", "size", "color", "scent"}

func NewVariant() Variant {
	return Variant{VariantType: "weight"}
}

// Upload is an image chosen in the form but not yet sent to the backend.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Draft is the superset record behind the product form. It carries every
// field any category might need; Project decides what is actually sent.
type Draft struct {
	ID       string
	Type     Type
	Category string
	Price    decimal.Decimal
	Stock    int
	Status   Status
	Featured bool

	NameEN        string
	DescriptionEN string
	Size          string
	Specs         map[Field]string
	Lists         map[Field][]string
	Variants      []Variant

	BundleName        string
	BundleDescription string
	BundleItems       []BundleItem

	SelectedFiles []Upload
	ImagePaths    []string
}

// NewDraft returns the empty form state.
func NewDraft() Draft {
	return Draft{
		Type:   Single,
		Status: Active,
		Specs:  map[Field]string{},
		Lists:  map[Field][]string{},
		BundleItems: []BundleItem{
			newBundleItem("Big Jar Candle 1"),
			newBundleItem("Big Jar Candle 2"),
			newBundleItem("Wax Freshener"),
		},
	}
}

// Spec returns the value of a specification field in its wire form.
func (d *Draft) Spec(f Field) string {
	if IsList(f) {
		return JoinList(d.Lists[f])
	}
	return d.Specs[f]
}

// SetSpec stores a raw form or wire value, splitting list fields.
func (d *Draft) SetSpec(f Field, raw string) {
	if d.Specs == nil {
		d.Specs = map[Field]string{}
	}
	if d.Lists == nil {
		d.Lists = map[Field][]string{}
	}
	if IsList(f) {
		d.Lists[f] = SplitList(raw)
		return
	}
	d.Specs[f] = raw
}

// DisplayName is the name shown in lists and messages.
func (d *Draft) DisplayName() string {
	if d.Type == Bundle {
		return d.BundleName
	}
	return d.NameEN
}

// Product is the persisted record as the backend returns it. List fields
// arrive comma-joined; specification fields land in Specs.
type Product struct {
	ID                string          `json:"_id"`
	ProductType       Type            `json:"productType"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price_egp"`
	Stock             int             `json:"stock"`
	Status            Status          `json:"status"`
	Featured          bool            `json:"featured"`
	NameEN            string          `json:"name_en"`
	DescriptionEN     string          `json:"description_en"`
	Name              string          `json:"name"`
	Size              string          `json:"size"`
	BundleName        string          `json:"bundleName"`
	BundleDescription string          `json:"bundleDescription"`
	BundleItems       []StoredItem    `json:"bundleItems"`
	Variants          []Variant       `json:"variants"`
	ImagePaths        []string        `json:"imagePaths"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	Specs map[Field]string `json:"-"`
}

type StoredItem struct {
	SubProductName string `json:"subProductName"`
	Size           string `json:"size"`
	AllowedScents  Joined `json:"allowedScents"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var base plain
	if err := json.Unmarshal(b, &base); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	base.Specs = make(map[Field]string)
	for _, f := range AllFields() {
		v, ok := raw[string(f)]
		if !ok {
			continue
		}
		var j Joined
		if err := json.Unmarshal(v, &j); err != nil {
			continue
		}
		base.Specs[f] = string(j)
	}

	*p = Product(base)
	return nil
}

// DisplayName mirrors the fallback chain used in success messages.
func (p Product) DisplayName() string {
	switch {
	case p.NameEN != "":
		return p.NameEN
	case p.BundleName != "":
		return p.BundleName
	case p.Name != "":
		return p.Name
	}
	return "product"
}

// Joined is a comma-joined list on the wire. Older records store some
// of these as JSON arrays, so both shapes decode.
type Joined string

func (j *Joined) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*j = ""
		return nil
	}
	if b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*j = Joined(JoinList(items))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*j = Joined(strings.TrimSpace(s))
	return nil
}
