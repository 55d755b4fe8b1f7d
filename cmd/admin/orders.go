package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirajadmin/internal/console"
	"sirajadmin/internal/domain/orders"
	"sirajadmin/internal/params"
	"sirajadmin/internal/web"
)

type ordersPage struct {
	View     console.OrdersView
	Rows     []orders.Order
	Pager    params.Pagination
	Statuses []orders.Status
}

func (app *application) ensureOrders(r *http.Request, ws *console.Workspace) {
	if !ws.Orders.Loaded() {
		ws.Orders.Refresh(r.Context())
	}
}

func (app *application) renderOrders(w http.ResponseWriter, r *http.Request, ws *console.Workspace) {
	v := ws.Orders.View()
	pager := params.ParsePagination(r.URL.Query())
	matched := params.Filter(v.Orders, pager.Query, func(o orders.Order) string {
		c := o.CustomerInfo
		return o.ID + " " + c.Name + " " + c.Phone + " " + c.Email + " " + c.City + " " + string(o.Status)
	})
	rows := params.Page(matched, &pager)

	app.render(w, r, http.StatusOK, "orders", web.Page{
		Title:   "Orders",
		Active:  "/orders",
		Message: v.Message,
		Data: ordersPage{
			View:     v,
			Rows:     rows,
			Pager:    pager,
			Statuses: orders.Statuses,
		},
	})
}

func (app *application) ordersPageHandler(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	app.ensureOrders(r, ws)
	ws.Orders.Close()
	app.renderOrders(w, r, ws)
}

func (app *application) refreshOrdersHandler(w http.ResponseWriter, r *http.Request) {
	o := workspace(r).Orders
	o.SetMessage("")
	o.Refresh(r.Context())
	redirect(w, r, "/orders")
}

func (app *application) orderDetailHandler(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	app.ensureOrders(r, ws)

	if err := ws.Orders.Open(chi.URLParam(r, "orderID")); err != nil {
		app.notFoundResponse(w, r, err)
		return
	}
	app.renderOrders(w, r, ws)
}

// updateOrderStatusHandler asks for confirmation first; the confirm page
// posts back here with confirm=yes.
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	ws := workspace(r)
	id := chi.URLParam(r, "orderID")
	status := orders.Status(r.PostFormValue("status"))
	if !status.Valid() {
		app.badRequestResponse(w, r, fmt.Errorf("unknown order status %q", status))
		return
	}

	if !confirmed(r) {
		app.ensureOrders(r, ws)
		ord, ok := ws.Orders.Find(id)
		if !ok {
			app.notFoundResponse(w, r, fmt.Errorf("order %s", id))
			return
		}
		app.render(w, r, http.StatusOK, "confirm", web.Page{
			Title:  "Update order status",
			Active: "/orders",
			Data: confirmData{
				Prompt: console.StatusPrompt(ord, status),
				Action: "/orders/" + id + "/status",
				Hidden: map[string]string{"status": string(status)},
				Button: "Update status",
				Cancel: "/orders",
			},
		})
		return
	}

	err := ws.Orders.UpdateStatus(r.Context(), id, status, true)
	if errors.Is(err, console.ErrBusy) {
		ws.Orders.SetMessage(busyMessage)
	}
	redirect(w, r, "/orders")
}
