package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/console"
	"sirajadmin/internal/ratelimiter"
	"sirajadmin/internal/session"
	"sirajadmin/internal/web"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	backend     *backend.Client
	renderer    *web.Renderer
	sessions    *session.Store[*console.Workspace]
	rateLimiter ratelimiter.Limiter
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.WorkspaceMiddleware)
		r.Use(app.RateLimiterMiddleware)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/products", http.StatusSeeOther)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.productsPageHandler)
			r.Get("/new", app.newProductHandler)
			r.Post("/form", app.productFormHandler)
			r.Post("/refresh", app.refreshProductsHandler)
			r.Get("/{productID}/edit", app.editProductHandler)
			r.Get("/{productID}/delete", app.confirmDeleteProductHandler)
			r.Post("/{productID}/delete", app.deleteProductHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", app.ordersPageHandler)
			r.Post("/refresh", app.refreshOrdersHandler)
			r.Get("/{orderID}", app.orderDetailHandler)
			r.Post("/{orderID}/status", app.updateOrderStatusHandler)
		})

		r.Route("/categories", func(r chi.Router) {
			app.categoryPages().routes(r)
			r.Post("/{id}/move/{dir}", app.moveCategoryHandler)
		})
		r.Route("/discounts", app.discountPages().routes)
		r.Route("/shipping", app.shippingPages().routes)
		r.Route("/care", app.carePages().routes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.notFoundResponse(w, r, errors.New("no such page"))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env, "backend", app.backend.BaseURL())

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}
