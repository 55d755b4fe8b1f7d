package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"sirajadmin/internal/console"
	"sirajadmin/internal/crud"
	"sirajadmin/internal/domain/care"
	"sirajadmin/internal/domain/categories"
	"sirajadmin/internal/domain/discounts"
	"sirajadmin/internal/domain/products"
	"sirajadmin/internal/domain/shipping"
	"sirajadmin/internal/web"
)

// collectionPage is what the list-and-form pages render.
type collectionPage[T crud.Entity, F any] struct {
	View     crud.View[T]
	Form     F
	ID       string
	Editing  bool
	ShowForm bool
	// Errors holds a message per rejected field, keyed by struct field.
	Errors map[string]string

	Categories []string
	Products   []products.Product
}

// collection serves one backend collection as a table with an add or edit
// form. F is the raw form; numbers stay text until fromForm parses them.
type collection[T crud.Entity, F any] struct {
	app      *application
	path     string
	page     string
	title    string
	noun     string
	list     func(*console.Workspace) *crud.List[T]
	blank    func(*console.Workspace) F
	toForm   func(T) F
	fromForm func(*console.Workspace, F) (T, error)
	extra    func(*http.Request, *console.Workspace, *collectionPage[T, F])
}

func (c *collection[T, F]) routes(r chi.Router) {
	r.Get("/", c.index)
	r.Post("/", c.create)
	r.Post("/{id}", c.update)
	r.Get("/{id}/delete", c.confirmDelete)
	r.Post("/{id}/delete", c.delete)
}

func ensureLoaded[T crud.Entity](r *http.Request, l *crud.List[T]) {
	if s := l.State(); s == crud.Idle || s == crud.Failed {
		l.Load(r.Context())
	}
}

func (c *collection[T, F]) show(w http.ResponseWriter, r *http.Request, ws *console.Workspace, status int, data collectionPage[T, F]) {
	if c.extra != nil {
		c.extra(r, ws, &data)
	}
	data.View = c.list(ws).View()
	c.app.render(w, r, status, c.page, web.Page{
		Title:   c.title,
		Active:  c.path,
		Message: data.View.Message,
		Data:    data,
	})
}

func (c *collection[T, F]) index(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	l := c.list(ws)
	ensureLoaded(r, l)

	q := r.URL.Query()
	var data collectionPage[T, F]
	if id := q.Get("edit"); id != "" {
		if err := l.StartEdit(id); err != nil {
			c.app.notFoundResponse(w, r, err)
			return
		}
		item, _ := l.Editing()
		data.Form = c.toForm(item)
		data.ID = id
		data.Editing = true
		data.ShowForm = true
	} else {
		l.CancelEdit()
		data.Form = c.blank(ws)
		data.ShowForm = q.Get("new") != ""
	}
	c.show(w, r, ws, http.StatusOK, data)
}

// decode parses the posted form. ok is false when the response has
// already been written.
func (c *collection[T, F]) decode(w http.ResponseWriter, r *http.Request) (f F, ok bool) {
	if err := r.ParseForm(); err != nil {
		c.app.badRequestResponse(w, r, err)
		return f, false
	}
	if err := decodeForm(&f, r.PostForm); err != nil {
		c.app.badRequestResponse(w, r, err)
		return f, false
	}
	return f, true
}

func (c *collection[T, F]) create(w http.ResponseWriter, r *http.Request) {
	c.save(w, r, "")
}

func (c *collection[T, F]) update(w http.ResponseWriter, r *http.Request) {
	c.save(w, r, chi.URLParam(r, "id"))
}

// save creates when id is empty. A rejected form is shown again with what
// was typed; a saved one redirects back to the table.
func (c *collection[T, F]) save(w http.ResponseWriter, r *http.Request, id string) {
	f, ok := c.decode(w, r)
	if !ok {
		return
	}
	ws := workspace(r)
	l := c.list(ws)

	again := collectionPage[T, F]{Form: f, ID: id, Editing: id != "", ShowForm: true}

	v, err := c.fromForm(ws, f)
	if err != nil {
		l.Reject(err)
		c.show(w, r, ws, http.StatusUnprocessableEntity, again)
		return
	}

	if id == "" {
		err = l.Create(r.Context(), v)
	} else {
		err = l.Update(r.Context(), id, v)
	}
	if err != nil {
		var invalid validator.ValidationErrors
		switch {
		case errors.Is(err, crud.ErrBusy):
			l.SetMessage(busyMessage)
		case errors.As(err, &invalid):
			again.Errors = crud.FieldErrors(err)
		}
		c.app.logger.Infow("change not saved", "page", c.page, "id", id, "error", err)
		c.show(w, r, ws, http.StatusUnprocessableEntity, again)
		return
	}
	redirect(w, r, c.path)
}

func (c *collection[T, F]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	l := c.list(ws)
	ensureLoaded(r, l)

	id := chi.URLParam(r, "id")
	if _, ok := l.Find(id); !ok {
		c.app.notFoundResponse(w, r, fmt.Errorf("%s %s", c.noun, id))
		return
	}

	c.app.render(w, r, http.StatusOK, "confirm", web.Page{
		Title:  c.title,
		Active: c.path,
		Data: confirmData{
			Prompt: fmt.Sprintf("Are you sure you want to delete this %s?", c.noun),
			Action: c.path + "/" + id + "/delete",
			Button: "Delete",
			Cancel: c.path,
		},
	})
}

func (c *collection[T, F]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		c.app.badRequestResponse(w, r, err)
		return
	}
	if !confirmed(r) {
		redirect(w, r, c.path+"/"+id+"/delete")
		return
	}

	l := c.list(workspace(r))
	err := l.Delete(r.Context(), id, true)
	if errors.Is(err, crud.ErrBusy) {
		l.SetMessage(busyMessage)
	}
	if err != nil {
		c.app.logger.Infow("not deleted", "page", c.page, "id", id, "error", err)
	}
	redirect(w, r, c.path)
}

// categoryNames lists the backend categories, falling back to the built-in
// product categories while the backend has none.
func categoryNames(r *http.Request, ws *console.Workspace) []string {
	ensureLoaded(r, ws.Categories.List)
	if names := categories.Names(ws.Categories.Items()); len(names) > 0 {
		return names
	}
	return products.Categories()
}

type categoryForm struct {
	Name      string `schema:"name"`
	SortOrder string `schema:"sortOrder"`
}

func (app *application) categoryPages() *collection[categories.Category, categoryForm] {
	return &collection[categories.Category, categoryForm]{
		app:   app,
		path:  "/categories",
		page:  "categories",
		title: "Categories",
		noun:  "category",
		list:  func(ws *console.Workspace) *crud.List[categories.Category] { return ws.Categories.List },
		blank: func(ws *console.Workspace) categoryForm {
			return categoryForm{SortOrder: strconv.Itoa(ws.Categories.NextSortOrder())}
		},
		toForm: func(c categories.Category) categoryForm {
			return categoryForm{Name: c.Name, SortOrder: strconv.Itoa(c.SortOrder)}
		},
		fromForm: func(ws *console.Workspace, f categoryForm) (categories.Category, error) {
			c := categories.Category{Name: strings.TrimSpace(f.Name)}
			if s := strings.TrimSpace(f.SortOrder); s == "" {
				c.SortOrder = ws.Categories.NextSortOrder()
			} else {
				n, err := strconv.Atoi(s)
				if err != nil {
					return c, errors.New("sort order must be a whole number")
				}
				c.SortOrder = n
			}
			return c, nil
		},
	}
}

func (app *application) moveCategoryHandler(w http.ResponseWriter, r *http.Request) {
	dir := console.Direction(chi.URLParam(r, "dir"))
	if dir != console.Up && dir != console.Down {
		app.notFoundResponse(w, r, fmt.Errorf("direction %q", dir))
		return
	}

	c := workspace(r).Categories
	ensureLoaded(r, c.List)
	err := c.Move(r.Context(), chi.URLParam(r, "id"), dir)
	switch {
	case errors.Is(err, console.ErrNotFound):
		app.notFoundResponse(w, r, err)
		return
	case errors.Is(err, console.ErrBusy):
		c.SetMessage(busyMessage)
	}
	redirect(w, r, "/categories")
}

type discountForm struct {
	Code       string   `schema:"code"`
	Type       string   `schema:"type"`
	Value      string   `schema:"value"`
	AppliesTo  string   `schema:"appliesTo"`
	Status     string   `schema:"status"`
	Categories []string `schema:"categories"`
	Products   []string `schema:"products"`
}

func (app *application) discountPages() *collection[discounts.Discount, discountForm] {
	toForm := func(d discounts.Discount) discountForm {
		f := discountForm{
			Code:       d.Code,
			Type:       string(d.Type),
			AppliesTo:  string(d.AppliesTo),
			Status:     string(d.Status),
			Categories: d.Categories,
			Products:   d.Products,
		}
		if !d.Value.IsZero() {
			f.Value = d.Value.String()
		}
		return f
	}
	return &collection[discounts.Discount, discountForm]{
		app:    app,
		path:   "/discounts",
		page:   "discounts",
		title:  "Discounts",
		noun:   "discount",
		list:   func(ws *console.Workspace) *crud.List[discounts.Discount] { return ws.Discounts },
		blank:  func(*console.Workspace) discountForm { return toForm(discounts.New()) },
		toForm: toForm,
		fromForm: func(_ *console.Workspace, f discountForm) (discounts.Discount, error) {
			d := discounts.New()
			d.Code = strings.ToUpper(strings.TrimSpace(f.Code))
			d.Type = discounts.Kind(f.Type)
			d.AppliesTo = discounts.Scope(f.AppliesTo)
			d.Status = discounts.Status(f.Status)
			value, err := decimal.NewFromString(strings.TrimSpace(f.Value))
			if err != nil {
				return d, errors.New("value must be a number")
			}
			d.Value = value
			switch d.AppliesTo {
			case discounts.ScopeCategory:
				d.Categories = append(d.Categories, f.Categories...)
			case discounts.ScopeProducts:
				d.Products = append(d.Products, f.Products...)
			}
			return d, nil
		},
		extra: func(r *http.Request, ws *console.Workspace, p *collectionPage[discounts.Discount, discountForm]) {
			p.Categories = categoryNames(r, ws)
			app.ensureProducts(r, ws)
			p.Products = ws.Products.View().Products
		},
	}
}

type shippingForm struct {
	City        string `schema:"city"`
	ShippingFee string `schema:"shippingFee"`
}

func (app *application) shippingPages() *collection[shipping.Rate, shippingForm] {
	return &collection[shipping.Rate, shippingForm]{
		app:   app,
		path:  "/shipping",
		page:  "shipping",
		title: "Shipping",
		noun:  "shipping rate",
		list:  func(ws *console.Workspace) *crud.List[shipping.Rate] { return ws.Shipping },
		blank: func(*console.Workspace) shippingForm { return shippingForm{} },
		toForm: func(s shipping.Rate) shippingForm {
			return shippingForm{City: s.City, ShippingFee: s.ShippingFee.String()}
		},
		fromForm: func(_ *console.Workspace, f shippingForm) (shipping.Rate, error) {
			rate := shipping.Rate{City: strings.TrimSpace(f.City)}
			fee, err := decimal.NewFromString(strings.TrimSpace(f.ShippingFee))
			if err != nil {
				return rate, errors.New("shipping fee must be a number")
			}
			rate.ShippingFee = fee
			return rate, nil
		},
	}
}

type careForm struct {
	Category    string `schema:"category"`
	CareTitle   string `schema:"careTitle"`
	CareContent string `schema:"careContent"`
}

func (app *application) carePages() *collection[care.Instruction, careForm] {
	return &collection[care.Instruction, careForm]{
		app:   app,
		path:  "/care",
		page:  "care",
		title: "Product Care",
		noun:  "care instruction",
		list:  func(ws *console.Workspace) *crud.List[care.Instruction] { return ws.Care },
		blank: func(*console.Workspace) careForm { return careForm{} },
		toForm: func(i care.Instruction) careForm {
			return careForm{Category: i.Category, CareTitle: i.CareTitle, CareContent: i.CareContent}
		},
		fromForm: func(_ *console.Workspace, f careForm) (care.Instruction, error) {
			return care.Instruction{
				Category:    strings.TrimSpace(f.Category),
				CareTitle:   strings.TrimSpace(f.CareTitle),
				CareContent: strings.TrimSpace(f.CareContent),
			}, nil
		},
		extra: func(r *http.Request, ws *console.Workspace, p *collectionPage[care.Instruction, careForm]) {
			p.Categories = categoryNames(r, ws)
		},
	}
}
