package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirajadmin/internal/console"
	"sirajadmin/internal/domain/products"
	"sirajadmin/internal/params"
	"sirajadmin/internal/web"
)

const maxImageBytes = 10 << 20

type productsPage struct {
	View         console.ProductView
	Rows         []products.Product
	Pager        params.Pagination
	Categories   []string
	Types        []products.Type
	Statuses     []products.Status
	VariantTypes []string
}

func (app *application) ensureProducts(r *http.Request, ws *console.Workspace) {
	if !ws.Products.Loaded() {
		ws.Products.Refresh(r.Context())
	}
}

func (app *application) productsPageHandler(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	app.ensureProducts(r, ws)

	v := ws.Products.View()
	pager := params.ParsePagination(r.URL.Query())
	matched := params.Filter(v.Products, pager.Query, func(p products.Product) string {
		return p.DisplayName() + " " + p.Category + " " + string(p.ProductType)
	})
	rows := params.Page(matched, &pager)

	app.render(w, r, http.StatusOK, "products", web.Page{
		Title:   "Products",
		Active:  "/products",
		Message: v.Message,
		Data: productsPage{
			View:         v,
			Rows:         rows,
			Pager:        pager,
			Categories:   products.Categories(),
			Types:        []products.Type{products.Single, products.Bundle},
			Statuses:     []products.Status{products.Active, products.Inactive},
			VariantTypes: products.VariantTypes,
		},
	})
}

func (app *application) newProductHandler(w http.ResponseWriter, r *http.Request) {
	workspace(r).Products.Reset()
	redirect(w, r, "/products")
}

func (app *application) refreshProductsHandler(w http.ResponseWriter, r *http.Request) {
	form := workspace(r).Products
	form.SetMessage("")
	form.Refresh(r.Context())
	redirect(w, r, "/products")
}

func (app *application) editProductHandler(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	app.ensureProducts(r, ws)

	id := chi.URLParam(r, "productID")
	if err := ws.Products.Edit(id); err != nil {
		app.notFoundResponse(w, r, err)
		return
	}
	redirect(w, r, "/products")
}

// productFormHandler takes every button of the product form. Whatever the
// button, the posted fields and any chosen images are kept in the draft
// first so nothing typed is lost.
func (app *application) productFormHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, products.MaxUploads*maxImageBytes+maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		app.badRequestResponse(w, r, err)
		return
	}

	var in console.FormInput
	if err := decodeForm(&in, r.PostForm); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	in.Posted = make(map[string]bool, len(r.PostForm))
	for key := range r.PostForm {
		in.Posted[key] = true
	}
	in.Specs = make(map[products.Field]string)
	for _, f := range products.AllFields() {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			in.Specs[f] = vals[0]
		}
	}

	form := workspace(r).Products
	form.Apply(in)

	action, index := parseAction(r.PostFormValue("action"))

	if err := app.attachImages(r, form); err != nil {
		app.logger.Warnw("image not attached", "error", err)
		if action == "submit" {
			// the page already says which file was refused
			redirect(w, r, "/products")
			return
		}
	}

	var err error
	switch action {
	case "add-item":
		if err = form.AddBundleItem(); errors.Is(err, console.ErrBundleFull) {
			form.SetMessage(fmt.Sprintf("A bundle can hold at most %d items.", products.MaxBundleItems))
		}
	case "remove-item":
		if err = form.RemoveBundleItem(index); errors.Is(err, console.ErrLastBundleItem) {
			form.SetMessage("A bundle needs at least one item.")
		}
	case "add-variant":
		form.AddVariant()
	case "remove-variant":
		err = form.RemoveVariant(index)
	case "remove-file":
		err = form.RemoveFile(index)
	case "submit":
		err = form.Submit(r.Context())
	}
	if errors.Is(err, console.ErrBusy) {
		form.SetMessage(busyMessage)
	}
	if err != nil {
		app.logger.Infow("product form action", "action", action, "error", err)
	}

	redirect(w, r, "/products")
}

func (app *application) attachImages(r *http.Request, form *console.ProductForm) error {
	if r.MultipartForm == nil {
		return nil
	}
	for _, fh := range r.MultipartForm.File["images"] {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		f.Close()
		if err != nil {
			return err
		}
		if len(data) > maxImageBytes {
			form.SetMessage(fmt.Sprintf("Error: %s is larger than %d MB.", fh.Filename, maxImageBytes>>20))
			return fmt.Errorf("%s: too large", fh.Filename)
		}
		if err := form.AttachFile(data); err != nil {
			return err
		}
	}
	return nil
}

func (app *application) confirmDeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	app.ensureProducts(r, ws)

	id := chi.URLParam(r, "productID")
	p, ok := ws.Products.Product(id)
	if !ok {
		app.notFoundResponse(w, r, fmt.Errorf("product %s", id))
		return
	}

	app.render(w, r, http.StatusOK, "confirm", web.Page{
		Title:  "Delete product",
		Active: "/products",
		Data: confirmData{
			Prompt: console.DeletePrompt(p.DisplayName()),
			Action: "/products/" + id + "/delete",
			Button: "Delete",
			Cancel: "/products",
		},
	})
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !confirmed(r) {
		redirect(w, r, "/products/"+id+"/delete")
		return
	}

	form := workspace(r).Products
	err := form.Delete(r.Context(), id, true)
	if errors.Is(err, console.ErrBusy) {
		form.SetMessage(busyMessage)
	}
	if err != nil {
		app.logger.Infow("product not deleted", "id", id, "error", err)
	}
	redirect(w, r, "/products")
}
