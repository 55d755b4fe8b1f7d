package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/domain/products"
)

// ListLimit is how many products one refresh asks for.
const ListLimit = 1000

var (
	ErrTooManyFiles     = errors.New("too many images")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrBundleFull       = errors.New("bundle already has the maximum number of items")
	ErrLastBundleItem   = errors.New("a bundle needs at least one item")
	ErrIndex            = errors.New("index out of range")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProductForm is the product page: the loaded product table plus the
// draft behind the create/edit form.
type ProductForm struct {
	store  products.Store
	logger *zap.SugaredLogger

	mu       sync.Mutex
	list     []products.Product
	loaded   bool
	draft    products.Draft
	editing  bool
	message  string
	inFlight bool
}

func NewProductForm(store products.Store, logger *zap.SugaredLogger) *ProductForm {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ProductForm{store: store, logger: logger, draft: products.NewDraft()}
}

// Refresh reloads the product table. The form is left alone.
func (f *ProductForm) Refresh(ctx context.Context) error {
	list, err := f.store.List(ctx, products.ListFilter{
		Limit:    ListLimit,
		Statuses: []products.Status{products.Active, products.Inactive},
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = true
	if err != nil {
		f.logger.Errorw("error fetching products", "error", err)
		f.list = nil
		f.message = "Error: Could not load products. " + fetchFailure(err, "products")
		return err
	}
	f.list = list
	return nil
}

// fetchFailure words a failed list load.
func fetchFailure(err error, what string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Failed to fetch %s: %s", what, http.StatusText(apiErr.Status))
	}
	return err.Error()
}

func (f *ProductForm) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *ProductForm) SetMessage(msg string) {
	f.mu.Lock()
	f.message = msg
	f.mu.Unlock()
}

// Reset drops the draft and leaves edit mode.
func (f *ProductForm) Reset() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
}

func (f *ProductForm) reset() {
	f.draft = products.NewDraft()
	f.editing = false
	f.message = ""
}

func (f *ProductForm) Product(id string) (products.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.product(id)
}

func (f *ProductForm) product(id string) (products.Product, bool) {
	for _, p := range f.list {
		if p.ID == id {
			return p, true
		}
	}
	return products.Product{}, false
}

// Edit loads a listed product into the form.
func (f *ProductForm) Edit(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.product(id)
	if !ok {
		return ErrNotFound
	}
	f.draft = products.Hydrate(p)
	f.editing = true
	f.message = "Editing product. Upload images only to ADD new ones."
	return nil
}

// FormInput is one post of the product form. Numbers stay as text so a
// bad entry reads as zero rather than failing the post.
type FormInput struct {
	Type              products.Type     `schema:"productType"`
	Category          string            `schema:"category"`
	Price             string            `schema:"price_egp"`
	Stock             string            `schema:"stock"`
	Status            products.Status   `schema:"status"`
	Featured          bool              `schema:"featured"`
	NameEN            string            `schema:"name_en"`
	DescriptionEN     string            `schema:"description_en"`
	Size              string            `schema:"size"`
	BundleName        string            `schema:"bundleName"`
	BundleDescription string            `schema:"bundleDescription"`
	BundleItems       []BundleItemInput `schema:"bundleItems"`
	Variants          []VariantInput    `schema:"variants"`

	// Specs holds only the specification fields present in the post.
	Specs map[products.Field]string `schema:"-"`

	// Posted names the text keys the post carried. Single-only and
	// bundle-only text fields are applied only when posted. A nil set
	// means every field was posted.
	Posted map[string]bool `schema:"-"`
}

func (in FormInput) posted(key string) bool {
	return in.Posted == nil || in.Posted[key]
}

type BundleItemInput struct {
	SubProductName string `schema:"subProductName"`
	Size           string `schema:"size"`
	AllowedScents  string `schema:"allowedScents"`
}

type VariantInput struct {
	VariantName string `schema:"variantName"`
	VariantType string `schema:"variantType"`
	Price       string `schema:"price"`
	Stock       string `schema:"stock"`
	SKU         string `schema:"sku"`
}

// Apply copies a form post into the draft. Sections the page did not
// render (bundle items on a single product, for example) keep their
// current values.
func (f *ProductForm) Apply(in FormInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &f.draft

	if in.Type.Valid() {
		d.Type = in.Type
	}
	d.Category = strings.TrimSpace(in.Category)
	d.Price = parseMoney(in.Price)
	d.Stock = parseCount(in.Stock)
	if in.Status.Valid() {
		d.Status = in.Status
	}
	d.Featured = in.Featured
	text := []struct {
		key string
		dst *string
		val string
	}{
		{"name_en", &d.NameEN, in.NameEN},
		{"description_en", &d.DescriptionEN, in.DescriptionEN},
		{"size", &d.Size, in.Size},
		{"bundleName", &d.BundleName, in.BundleName},
		{"bundleDescription", &d.BundleDescription, in.BundleDescription},
	}
	for _, t := range text {
		if in.posted(t.key) {
			*t.dst = t.val
		}
	}

	for field, raw := range in.Specs {
		d.SetSpec(field, raw)
	}
	for i, it := range in.BundleItems {
		if i >= len(d.BundleItems) {
			break
		}
		d.BundleItems[i] = products.BundleItem{
			SubProductName: it.SubProductName,
			Size:           it.Size,
			AllowedScents:  products.SplitList(it.AllowedScents),
		}
	}
	for i, v := range in.Variants {
		if i >= len(d.Variants) {
			break
		}
		d.Variants[i] = products.Variant{
			VariantName: v.VariantName,
			VariantType: v.VariantType,
			Price:       parseMoney(v.Price),
			Stock:       parseCount(v.Stock),
			SKU:         v.SKU,
		}
	}
}

func parseMoney(s string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return v
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func (f *ProductForm) AddBundleItem() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.draft.BundleItems)
	if n >= products.MaxBundleItems {
		return ErrBundleFull
	}
	f.draft.BundleItems = append(f.draft.BundleItems, products.BundleItem{
		SubProductName: fmt.Sprintf("Item %d", n+1),
		AllowedScents:  []string{"Vanilla Cookie"},
	})
	return nil
}

func (f *ProductForm) RemoveBundleItem(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.draft.BundleItems
	if len(items) <= 1 {
		return ErrLastBundleItem
	}
	if i < 0 || i >= len(items) {
		return ErrIndex
	}
	f.draft.BundleItems = append(items[:i:i], items[i+1:]...)
	return nil
}

func (f *ProductForm) AddVariant() {
	f.mu.Lock()
	f.draft.Variants = append(f.draft.Variants, products.NewVariant())
	f.mu.Unlock()
}

func (f *ProductForm) RemoveVariant(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	vs := f.draft.Variants
	if i < 0 || i >= len(vs) {
		return ErrIndex
	}
	f.draft.Variants = append(vs[:i:i], vs[i+1:]...)
	return nil
}

// AttachFile queues an image for the next submit. The type is sniffed
// from the bytes and the stored name is generated.
func (f *ProductForm) AttachFile(data []byte) error {
	ct := sniffImage(data)
	ext, ok := imageExt[ct]
	if !ok {
		f.SetMessage("Error: Only JPEG, PNG or WebP images can be uploaded.")
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.draft.SelectedFiles) >= products.MaxUploads {
		f.message = fmt.Sprintf("Maximum %d images allowed.", products.MaxUploads)
		return ErrTooManyFiles
	}
	f.draft.SelectedFiles = append(f.draft.SelectedFiles, products.Upload{
		Filename:    "image-" + uuid.NewString() + ext,
		ContentType: ct,
		Data:        data,
	})
	return nil
}

func sniffImage(data []byte) string {
	n := len(data)
	if n > 512 {
		n = 512
	}
	ct := http.DetectContentType(data[:n])
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func (f *ProductForm) RemoveFile(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	files := f.draft.SelectedFiles
	if i < 0 || i >= len(files) {
		return ErrIndex
	}
	f.draft.SelectedFiles = append(files[:i:i], files[i+1:]...)
	return nil
}

// Submit validates, projects and sends the draft. Validation failures
// never reach the backend. The draft survives any failure untouched.
func (f *ProductForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrBusy
	}
	f.message = ""
	editing := f.editing
	d := cloneDraft(f.draft)

	if err := products.ValidateDraft(d, editing); err != nil {
		f.message = "Error: " + err.Error()
		f.mu.Unlock()
		return err
	}
	payload, err := products.Project(d)
	if err != nil {
		f.message = "Error: " + err.Error()
		f.mu.Unlock()
		return err
	}
	f.inFlight = true
	f.mu.Unlock()

	var saved *products.Product
	if editing {
		saved, err = f.store.Update(ctx, d.ID, payload, d.SelectedFiles)
	} else {
		saved, err = f.store.Create(ctx, payload, d.SelectedFiles)
	}

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.message = submitFailure(err, editing)
		f.mu.Unlock()
		f.logger.Warnw("product submit failed", "editing", editing, "id", d.ID, "error", err)
		return err
	}
	action := "created"
	if editing {
		action = "updated"
	}
	f.reset()
	f.message = fmt.Sprintf("Success! Product %q %s.", saved.DisplayName(), action)
	f.mu.Unlock()

	f.logger.Infow("product saved", "action", action, "id", saved.ID)
	f.Refresh(ctx)
	return nil
}

func submitFailure(err error, editing bool) string {
	if backend.IsNetwork(err) {
		return fmt.Sprintf("Network Error: %s. Please check connection or API URL.", err)
	}
	verb := "creating"
	if editing {
		verb = "updating"
	}
	return fmt.Sprintf("Error %s product: %s", verb, backend.Describe(err, "Server responded with status %d"))
}

// DeletePrompt is the question asked before a product is deleted.
func DeletePrompt(name string) string {
	return fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", name)
}

// Delete removes a product. When it is the one in the form, the form is
// reset once the backend confirms.
func (f *ProductForm) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrBusy
	}
	name := "product"
	if p, ok := f.product(id); ok {
		name = p.DisplayName()
	}
	f.message = ""
	f.inFlight = true
	f.mu.Unlock()

	err := f.store.Delete(ctx, id)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		if backend.IsNetwork(err) {
			f.message = fmt.Sprintf("Network Error: %s.", err)
		} else {
			f.message = "Error deleting product: " + backend.Describe(err, "Status %d")
		}
		f.mu.Unlock()
		f.logger.Warnw("product delete failed", "id", id, "error", err)
		if backend.IsNotFound(err) {
			// already gone; drop the stale row
			f.Refresh(ctx)
		}
		return err
	}
	wasEditing := f.editing && f.draft.ID == id
	f.mu.Unlock()

	f.logger.Infow("product deleted", "id", id)
	f.Refresh(ctx)

	f.mu.Lock()
	if wasEditing {
		f.reset()
	}
	f.message = fmt.Sprintf("Success! Product %q deleted.", name)
	f.mu.Unlock()
	return nil
}

// FieldView is one visible specification input.
type FieldView struct {
	products.FieldInfo
	Value string
}

// ProductView is a snapshot of the product page.
type ProductView struct {
	Products []products.Product
	Loaded   bool
	Draft    products.Draft
	Editing  bool
	Busy     bool
	Message  string

	Fields         []FieldView
	KnownCategory  bool
	IsBundle       bool
	CanAddItem     bool
	CanRemoveItem  bool
	CanAttach      bool
	PendingUploads []string
	ExistingImages []string
}

func (f *ProductForm) View() ProductView {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := cloneDraft(f.draft)
	v := ProductView{
		Products:       append([]products.Product(nil), f.list...),
		Loaded:         f.loaded,
		Draft:          d,
		Editing:        f.editing,
		Busy:           f.inFlight,
		Message:        f.message,
		IsBundle:       d.Type == products.Bundle,
		CanAddItem:     len(d.BundleItems) < products.MaxBundleItems,
		CanRemoveItem:  len(d.BundleItems) > 1,
		CanAttach:      len(d.SelectedFiles) < products.MaxUploads,
		ExistingImages: d.ImagePaths,
	}
	fields, known := products.FieldsFor(d.Category)
	v.KnownCategory = known
	for _, fl := range fields {
		v.Fields = append(v.Fields, FieldView{FieldInfo: products.Info(fl), Value: d.Spec(fl)})
	}
	for _, u := range d.SelectedFiles {
		v.PendingUploads = append(v.PendingUploads, path.Base(u.Filename))
	}
	return v
}

func cloneDraft(d products.Draft) products.Draft {
	out := d
	out.Specs = make(map[products.Field]string, len(d.Specs))
	for k, v := range d.Specs {
		out.Specs[k] = v
	}
	out.Lists = make(map[products.Field][]string, len(d.Lists))
	for k, v := range d.Lists {
		out.Lists[k] = append([]string(nil), v...)
	}
	out.BundleItems = make([]products.BundleItem, len(d.BundleItems))
	for i, it := range d.BundleItems {
		it.AllowedScents = append([]string(nil), it.AllowedScents...)
		out.BundleItems[i] = it
	}
	out.Variants = append([]products.Variant(nil), d.Variants...)
	out.SelectedFiles = append([]products.Upload(nil), d.SelectedFiles...)
	out.ImagePaths = append([]string(nil), d.ImagePaths...)
	return out
}
