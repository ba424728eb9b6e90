package server

import (
	"errors"
	"log"
	"time"

	"github.com/rchoppari/EcomerceProj/internal/handlers"
	"github.com/rchoppari/EcomerceProj/internal/middleware"
	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth     *services.AuthService
	Tokens   *services.TokenService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	// Broker names the event broker in use, reported by /health.
	Broker string
}

// New builds the Fiber app with middleware, the health check and the /api routes.
func New(svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
	}))

	broker := svc.Broker
	if broker == "" {
		broker = "none"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"broker": broker,
		})
	})

	api := app.Group("/api")
	auth := middleware.AuthRequired(svc.Tokens)

	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(api)
	handlers.NewCartHandler(svc.Carts).RegisterRoutes(api, auth)
	handlers.NewOrderHandler(svc.Orders).RegisterRoutes(api, auth)

	return app
}

// errorHandler keeps unhandled failures in the {"message": ...} shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
