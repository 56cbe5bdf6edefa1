// Package app wires the product store, provider, notifiers and HTTP API
// together from a config.Config.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/notify"
	"inventory/internal/provider"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"
)

// App owns the long-lived components of the inventory service.
type App struct {
	Config   config.Config
	Store    *repositories.GORMProductRepository
	Bus      *notify.Bus
	Provider *provider.ProductProvider
	Products *services.ProductService
	Auth     *services.AuthService // nil when the API is unauthenticated
	MQ       *rabbitmq.Client      // nil when broker notifications are disabled
}

// New opens the store and builds the components described by cfg. The
// caller must Close the returned App.
func New(cfg config.Config) (*App, error) {
	store, err := repositories.OpenProductStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open product store: %w", err)
	}

	a := &App{
		Config: cfg,
		Store:  store,
		Bus:    notify.NewBus(),
	}

	notifiers := notify.Multi{a.Bus}
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.MQ = mq
		notifiers = append(notifiers, notify.NewBroker(mq))
	}

	a.Provider = provider.NewProductProvider(store, notifiers)
	a.Products = services.NewProductService(a.Provider)
	if cfg.AuthSecret != "" {
		a.Auth = services.NewAuthService(cfg.AuthSecret)
	}
	return a, nil
}

// HTTP builds the Fiber app serving the product API under /api/v1.
func (a *App) HTTP() *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"broker": a.MQ != nil,
		})
	})

	apiV1 := app.Group("/api/v1")
	if a.Auth != nil {
		apiV1.Use(middleware.AuthRequired(a.Auth))
	}

	productHandler := handlers.NewProductHandler(a.Products, a.Provider)
	productHandler.RegisterRoutes(apiV1)

	return app
}

// LogChanges logs every change to the products collection and its items
// until the returned func is called.
func (a *App) LogChanges() func() {
	return a.Bus.Subscribe(models.PathProducts, true, func(address string) {
		log.Printf("Products changed: %s", address)
	})
}

// Close releases the broker connection and the store.
func (a *App) Close() error {
	if a.MQ != nil {
		if err := a.MQ.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	return a.Store.Close()
}
