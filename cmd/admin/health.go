package main

import "net/http"

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.Env,
		"version": version,
		"backend": app.backend.BaseURL(),
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.logger.Errorw("health response", "error", err)
	}
}
