package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/rchoppari/EcomerceProj/internal/config"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
	"github.com/rchoppari/EcomerceProj/internal/server"
	"github.com/rchoppari/EcomerceProj/internal/services"
	"github.com/rchoppari/EcomerceProj/pkg/kafka"
	"github.com/rchoppari/EcomerceProj/pkg/rabbitmq"
)

const consumerGroup = "order-events"

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := repositories.OpenDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Event broker ---
	bus, err := newEventBus(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize event broker: %v", err)
	}
	defer func() {
		if err := bus.close(); err != nil {
			log.Printf("Error closing event broker: %v", err)
		}
	}()

	app, orderService, err := buildApp(cfg, db, bus.publisher)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Order event consumer ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		log.Printf("Starting %s consumer for order events...", cfg.EventBroker)
		if err := bus.consume(ctx, orderService.HandleOrderPlaced); err != nil {
			log.Printf("Failed to start order event consumer: %v", err)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// buildApp wires repositories, services and handlers over db. publisher may be nil.
func buildApp(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) (*fiber.App, *services.OrderService, error) {
	accountRepo := repositories.NewGORMAccountRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	if cfg.SeedProducts {
		seeded, err := repositories.SeedProducts(productRepo)
		if err != nil {
			return nil, nil, err
		}
		if seeded > 0 {
			log.Printf("Seeded %d products", seeded)
		}
	}

	credentials, err := services.NewCredentialPolicy(cfg.PasswordPolicy)
	if err != nil {
		return nil, nil, err
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(
		repositories.NewGORMUnitOfWork(db),
		orderRepo,
		productRepo,
		cartService,
		publisher,
		cfg.RepriceOrders,
	)

	app := server.New(server.Services{
		Auth:     services.NewAuthService(accountRepo, tokenService, credentials),
		Tokens:   tokenService,
		Products: services.NewProductService(productRepo),
		Carts:    cartService,
		Orders:   orderService,
		Broker:   cfg.EventBroker,
	})
	return app, orderService, nil
}

// eventBus is the configured broker seen from main: a publisher for the order
// service, a consumer loop and a closer.
type eventBus struct {
	publisher services.EventPublisher
	consume   func(ctx context.Context, handler func(body []byte) error) error
	close     func() error
}

func newEventBus(cfg config.Config) (*eventBus, error) {
	switch cfg.EventBroker {
	case "", "none":
		return &eventBus{
			consume: func(context.Context, func([]byte) error) error { return nil },
			close:   func() error { return nil },
		}, nil

	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, err
		}
		return &eventBus{
			publisher: client,
			consume: func(_ context.Context, handler func([]byte) error) error {
				return client.ConsumeOrderEvents(handler)
			},
			close: client.Close,
		}, nil

	case "kafka":
		broker := kafka.NewBroker(cfg.KafkaBrokers, cfg.KafkaTopic)
		return &eventBus{
			publisher: broker,
			consume: func(ctx context.Context, handler func([]byte) error) error {
				broker.Consume(ctx, consumerGroup, handler)
				return nil
			},
			close: broker.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported event broker %q", cfg.EventBroker)
}
