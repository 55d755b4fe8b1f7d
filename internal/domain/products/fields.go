package products

// Field names a category specification field. The value is the JSON key
// the backend stores it under.
type Field string

const (
	BurnTime       Field = "burnTime"
	WickType       Field = "wickType"
	CoverageSpace  Field = "coverageSpace"
	Scents         Field = "scents"
	ScentOptions   Field = "scentOptions"
	TypeOptions    Field = "typeOptions"
	Dimensions     Field = "dimensions"
	SkinType       Field = "skinType"
	KeyIngredients Field = "keyIngredients"
	SoapWeight     Field = "soapWeight"
	FeatureBenefit Field = "featureBenefit"
	SizeOptions    Field = "sizeOptions"
	Color          Field = "color"
	OilWeight      Field = "oilWeight"
	MassageWeight  Field = "massageWeight"
	WeightOptions  Field = "weightOptions"
	ShapeOptions   Field = "shapeOptions"
	FizzySpecs     Field = "fizzySpecs"
	Weight         Field = "weight"
)

// FieldInfo drives how a field is rendered in the form.
type FieldInfo struct {
	Field       Field
	Label       string
	Placeholder string
	Hint        string
	List        bool
	Wide        bool
}

var fieldInfo = map[Field]FieldInfo{
	BurnTime:       {Label: "Burn Time", Placeholder: "e.g., 40-45 hours"},
	WickType:       {Label: "Wick Type", Placeholder: "e.g., Cotton, Wood"},
	CoverageSpace:  {Label: "Coverage Space", Placeholder: "e.g., 15-20 m2 bedroom"},
	Scents:         {Label: "Scent", Placeholder: "e.g., Vanilla", List: true},
	ScentOptions:   {Label: "Scent Options (Comma separated)", Placeholder: "e.g., Vanilla, Rose, Oud", Hint: "These will appear as a dropdown menu for the customer.", List: true, Wide: true},
	TypeOptions:    {Label: "Type Options (Comma separated)", Placeholder: "e.g., Pottery, Glass", Hint: "These will appear as a dropdown menu.", List: true, Wide: true},
	Dimensions:     {Label: "Dimensions", Placeholder: "e.g., 10x10x5 cm"},
	SkinType:       {Label: "Skin Type", Placeholder: "e.g., For Sensitive Skin"},
	KeyIngredients: {Label: "Key Ingredients (Comma separated)", Placeholder: "e.g., Vitamin E, Aloe Vera", Hint: "Displayed as product information (not a dropdown)", List: true},
	SoapWeight:     {Label: "Weight", Placeholder: "e.g., 100g"},
	FeatureBenefit: {Label: "Feature / Benefit", Placeholder: "e.g., Moisturizing"},
	SizeOptions:    {Label: "Size Options (Comma separated)", Placeholder: "e.g., 50ml, 100ml", Hint: "These will appear as a dropdown menu.", List: true, Wide: true},
	Color:          {Label: "Color", Placeholder: "e.g., Gold"},
	OilWeight:      {Label: "Weight / Size", Placeholder: "e.g., 100ml"},
	MassageWeight:  {Label: "Weight", Placeholder: "e.g., 150g"},
	WeightOptions:  {Label: "Weight Options (Comma separated)", Placeholder: "e.g., 50g, 100g", Hint: "These will appear as a dropdown menu.", List: true, Wide: true},
	ShapeOptions:   {Label: "Shape Options (Comma separated)", Placeholder: "e.g., Heart, Round", Hint: "These will appear as a dropdown menu.", List: true, Wide: true},
	FizzySpecs:     {Label: "Specifications", Placeholder: "e.g., 250g jar, lavender salts", Wide: true},
	Weight:         {Label: "Weight", Placeholder: "e.g., 200g"},
}

// allFields fixes an iteration order for fieldInfo.
var allFields = []Field{
	BurnTime, WickType, CoverageSpace, Scents, ScentOptions, TypeOptions,
	Dimensions, SkinType, KeyIngredients, SoapWeight, FeatureBenefit,
	SizeOptions, Color, OilWeight, MassageWeight, WeightOptions,
	ShapeOptions, FizzySpecs, Weight,
}

// categoryFields is the category -> specification field table. Adding a
// category is a data edit here; nothing else branches on category names.
var categoryFields = map[string][]Field{
	"Candles":             {BurnTime, WickType, CoverageSpace, Scents},
	"Pottery Collection":  {BurnTime, WickType, CoverageSpace, ScentOptions},
	"Wax Burners":         {TypeOptions, Dimensions},
	"Deodorant":           {Scents, SkinType, KeyIngredients},
	"Soap":                {Scents, SoapWeight, FeatureBenefit, KeyIngredients},
	"Body Splash":         {Scents, SizeOptions},
	"Shimmering Body Oil": {Color, Scents, OilWeight},
	"Massage Candles":     {Scents, MassageWeight},
	"Fresheners":          {ScentOptions},
	"Wax Melts":           {WeightOptions, ScentOptions},
	"Car Diffusers":       {ShapeOptions, ScentOptions},
	"Reed Diffusers":      {ScentOptions},
	"Sets":                {},
	"Fizzy Salts":         {FizzySpecs},
}

// defaultFields applies to categories missing from categoryFields.
var defaultFields = []Field{BurnTime, WickType, CoverageSpace}

// categoryOrder is the order categories are offered in the form.
var categoryOrder = []string{
	"Bundles", "Candles", "Pottery Collection", "Wax Burners", "Fresheners",
	"Wax Melts", "Car Diffusers", "Reed Diffusers", "Deodorant", "Soap",
	"Body Splash", "Shimmering Body Oil", "Massage Candles", "Fizzy Salts", "Sets",
}

// FieldsFor returns the specification fields for category. known is false
// when the default set was used.
func FieldsFor(category string) (fields []Field, known bool) {
	fs, ok := categoryFields[category]
	if !ok {
		fs = defaultFields
	}
	out := make([]Field, len(fs))
	copy(out, fs)
	return out, ok
}

func IsList(f Field) bool { return fieldInfo[f].List }

func Info(f Field) FieldInfo {
	fi := fieldInfo[f]
	fi.Field = f
	return fi
}

func AllFields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}
