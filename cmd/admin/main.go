package main

import (
	"context"
	"expvar"
	"fmt"
	"html/template"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/console"
	"sirajadmin/internal/imagecdn"
	"sirajadmin/internal/ratelimiter"
	"sirajadmin/internal/session"
	"sirajadmin/internal/web"
)

var version = "1.0.0"

func init() {
	// the store backend reads prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// NewLogger creates a console zap logger with coloured levels.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

// consoleBackend wires the backend client into the shape a workspace needs.
func consoleBackend(c *backend.Client) console.Backend {
	return console.Backend{
		Products:   c.Products(),
		Orders:     c.Orders(),
		Categories: c.Categories(),
		Discounts:  c.Discounts(),
		Shipping:   c.ShippingRates(),
		Care:       c.Care(),
	}
}

func main() {
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Infow("no .env file loaded, using process environment", "error", err)
	}

	cfg, err := loadConfig(osLookup, logger)
	if err != nil {
		logger.Fatal(err)
	}

	client, err := backend.New(cfg.BackendURL, logger.With("component", "backend"))
	if err != nil {
		logger.Fatal(err)
	}

	thumbs, err := imagecdn.New(cfg.CloudinaryURL, logger.With("component", "imagecdn"))
	if err != nil {
		logger.Fatal(err)
	}
	if !thumbs.Enabled() {
		logger.Info("CLOUDINARY_URL not set, product images are shown at full size")
	}

	renderer, err := web.New(template.FuncMap{"thumb": thumbs.Thumb})
	if err != nil {
		logger.Fatal(err)
	}

	deps := consoleBackend(client)
	sessions := session.New(func() *console.Workspace {
		return console.NewWorkspace(deps, logger)
	}, cfg.SessionIdle, cfg.production())

	rateLimiter := ratelimiter.NewFixedWindow(
		cfg.RateLimiter.RequestsPerTimeFrame,
		cfg.RateLimiter.TimeFrame,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Run(ctx, time.Minute)
	go rateLimiter.Run(ctx)

	app := &application{
		config:      cfg,
		logger:      logger,
		backend:     client,
		renderer:    renderer,
		sessions:    sessions,
		rateLimiter: rateLimiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("sessions", expvar.Func(func() any {
		return sessions.Len()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
