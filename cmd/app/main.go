package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/flowerstore/admin-dashboard/internal/api"
	"github.com/flowerstore/admin-dashboard/internal/auth"
	"github.com/flowerstore/admin-dashboard/internal/categories"
	"github.com/flowerstore/admin-dashboard/internal/config"
	"github.com/flowerstore/admin-dashboard/internal/dashboard"
	"github.com/flowerstore/admin-dashboard/internal/orders"
	"github.com/flowerstore/admin-dashboard/internal/products"
	"github.com/flowerstore/admin-dashboard/internal/session"
	"github.com/flowerstore/admin-dashboard/internal/ui"
	"github.com/flowerstore/admin-dashboard/internal/users"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	cfg := config.Load()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	if cfg.EnableTracing {
		log.Info("tracing enabled")
		initTracing()
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	store := mustOpenSessionStore(cfg, log)
	backend := api.NewClient(cfg.BackendURL, httpClient, log)

	app := fiber.New(fiber.Config{Views: ui.NewEngine()})
	app.Use(requestLogger(log))

	authHandler := auth.NewHandler(backend, store, log)
	authHandler.RegisterRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusFound)
	})

	dash := app.Group("/dashboard", auth.RequireSession(store))
	dashboard.NewHandler(backend, store, log).RegisterRoutes(dash)
	users.NewHandler(backend, store, log).RegisterRoutes(dash)
	categories.NewHandler(backend, store, log).RegisterRoutes(dash)
	products.NewHandler(backend, store, log).RegisterRoutes(dash)
	orders.NewHandler(backend, store, log).RegisterRoutes(dash)

	log.Infof("starting admin dashboard on %s (backend %s)", cfg.Addr, cfg.BackendURL)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func mustOpenSessionStore(cfg config.Config, log logrus.FieldLogger) session.Store {
	switch cfg.SessionBackend {
	case "redis":
		log.Infof("using redis session store at %s", cfg.RedisAddr)
		return session.NewRedisStore(cfg.RedisAddr)
	default:
		store, err := session.NewFileStore(cfg.StateDir)
		if err != nil {
			log.Fatalf("failed to open session store: %v", err)
		}
		return store
	}
}

func initTracing() *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	return tp
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Debug("request handled")
		return err
	}
}
