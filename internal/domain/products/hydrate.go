package products

// Hydrate rebuilds the form state for editing p. Pending uploads are never
// carried over; stored image URLs stay in ImagePaths.
func Hydrate(p Product) Draft {
	d := NewDraft()

	d.ID = p.ID
	if p.ProductType.Valid() {
		d.Type = p.ProductType
	}
	d.Category = p.Category
	d.Price = p.Price
	d.Stock = p.Stock
	if p.Status.Valid() {
		d.Status = p.Status
	}
	d.Featured = p.Featured
	d.NameEN = p.NameEN
	d.DescriptionEN = p.DescriptionEN
	d.Size = p.Size
	d.BundleName = p.BundleName
	d.BundleDescription = p.BundleDescription

	for f, v := range p.Specs {
		d.SetSpec(f, v)
	}

	if len(p.BundleItems) > 0 {
		d.BundleItems = make([]BundleItem, 0, len(p.BundleItems))
		for _, it := range p.BundleItems {
			d.BundleItems = append(d.BundleItems, BundleItem{
				SubProductName: it.SubProductName,
				Size:           it.Size,
				AllowedScents:  SplitList(string(it.AllowedScents)),
			})
		}
	}

	d.Variants = make([]Variant, len(p.Variants))
	copy(d.Variants, p.Variants)

	d.SelectedFiles = nil
	d.ImagePaths = make([]string, len(p.ImagePaths))
	copy(d.ImagePaths, p.ImagePaths)

	return d
}
