package products

import (
	"encoding/json"
	"reflect"
	"testing"
)

const storedCandle = `{
	"_id": "65f0c0ffee0000000000abcd",
	"productType": "Single",
	"category": "Candles",
	"price_egp": 450.5,
	"stock": 8,
	"status": "Active",
	"featured": true,
	"name_en": "Midnight Jar",
	"scents": "Rose, Vanilla",
	"burnTime": "40-45 hours",
	"scentOptions": ["Oud", "Amber"],
	"imagePaths": ["https://res.cloudinary.com/demo/image/upload/v1/products/a.jpg"],
	"variants": [{"variantName": "Large", "variantType": "size", "price": 600, "stock": 3}]
}`

func decodeProduct(t *testing.T, raw string) Product {
	t.Helper()
	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return p
}

func TestHydrate_SplitsStoredScents(t *testing.T) {
	d := Hydrate(decodeProduct(t, storedCandle))

	if want := []string{"Rose", "Vanilla"}; !reflect.DeepEqual(d.Lists[Scents], want) {
		t.Fatalf("scents = %q, want %q", d.Lists[Scents], want)
	}
	if want := []string{"Oud", "Amber"}; !reflect.DeepEqual(d.Lists[ScentOptions], want) {
		t.Fatalf("scentOptions = %q, want %q", d.Lists[ScentOptions], want)
	}
	if d.Specs[BurnTime] != "40-45 hours" {
		t.Fatalf("burnTime = %q", d.Specs[BurnTime])
	}
	if d.ID != "65f0c0ffee0000000000abcd" || d.NameEN != "Midnight Jar" || !d.Featured {
		t.Fatalf("base fields not copied: %+v", d)
	}
	if d.Price.String() != "450.5" || d.Stock != 8 {
		t.Fatalf("price/stock = %s/%d", d.Price, d.Stock)
	}
	if len(d.Variants) != 1 || d.Variants[0].VariantName != "Large" {
		t.Fatalf("variants = %+v", d.Variants)
	}
}

func TestHydrate_KeepsImagesSeparateFromUploads(t *testing.T) {
	d := Hydrate(decodeProduct(t, storedCandle))
	if len(d.SelectedFiles) != 0 {
		t.Fatalf("selected files should be empty, got %d", len(d.SelectedFiles))
	}
	if len(d.ImagePaths) != 1 {
		t.Fatalf("image paths = %v", d.ImagePaths)
	}
}

func TestHydrate_BundleItems(t *testing.T) {
	p := decodeProduct(t, `{
		"_id": "b1",
		"productType": "Bundle",
		"category": "Bundles",
		"bundleName": "Trio",
		"bundleItems": [
			{"subProductName": "Jar", "size": "L", "allowedScents": "Rose,  Oud ,"},
			{"subProductName": "Melt", "allowedScents": ""}
		]
	}`)
	d := Hydrate(p)

	if d.Type != Bundle || d.BundleName != "Trio" {
		t.Fatalf("bundle fields not copied: %+v", d)
	}
	if len(d.BundleItems) != 2 {
		t.Fatalf("bundle items = %d", len(d.BundleItems))
	}
	if want := []string{"Rose", "Oud"}; !reflect.DeepEqual(d.BundleItems[0].AllowedScents, want) {
		t.Fatalf("allowed scents = %q", d.BundleItems[0].AllowedScents)
	}
	if len(d.BundleItems[1].AllowedScents) != 0 {
		t.Fatalf("expected no scents, got %q", d.BundleItems[1].AllowedScents)
	}
}

func TestHydrate_ProjectRoundTrip(t *testing.T) {
	d := Hydrate(decodeProduct(t, storedCandle))
	p, err := Project(d)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	sp := p.(SinglePayload)
	if sp.Specs[Scents] != "Rose, Vanilla" {
		t.Fatalf("scents = %q", sp.Specs[Scents])
	}
	if _, ok := sp.Specs[ScentOptions]; ok {
		t.Fatalf("Candles must not send scentOptions")
	}
}
