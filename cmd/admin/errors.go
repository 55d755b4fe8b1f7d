package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"sirajadmin/internal/web"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorPage(w, r, http.StatusInternalServerError, "Something went wrong",
		"The server encountered a problem and could not process your request.")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorPage(w, r, http.StatusBadRequest, "Bad request", err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorPage(w, r, http.StatusNotFound, "Not found", "The page or record you asked for does not exist.")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	secs := int(math.Ceil(retryAfter.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	app.errorPage(w, r, http.StatusTooManyRequests, "Slow down",
		fmt.Sprintf("Too many changes in a short time. Try again in %d seconds.", secs))
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) errorPage(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	err := app.renderer.Render(w, status, "error", web.Page{Title: title, Data: detail})
	if err != nil {
		app.logger.Errorw("render error page", "path", r.URL.Path, "error", err)
		http.Error(w, detail, status)
	}
}

// render writes a full page, falling back to the error page when the
// template fails.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, name string, p web.Page) {
	if err := app.renderer.Render(w, status, name, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
