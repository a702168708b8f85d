package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shareit-app/lending-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Items    *handlers.ItemsHandler
	Bookings *handlers.BookingsHandler
	Requests *handlers.RequestsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Patch("/:id", cfg.Users.Update)
	users.Get("/:id", cfg.Users.Get)
	users.Get("/", cfg.Users.List)
	users.Delete("/:id", cfg.Users.Delete)

	items := app.Group("/items")
	items.Post("/", cfg.Items.Create)
	items.Get("/search", cfg.Items.Search)
	items.Patch("/:itemId", cfg.Items.Update)
	items.Get("/:itemId", cfg.Items.Get)
	items.Get("/", cfg.Items.ListByOwner)
	items.Post("/:itemId/comment", cfg.Items.AddComment)

	bookings := app.Group("/bookings")
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Get("/owner", cfg.Bookings.ListByOwner)
	bookings.Patch("/:bookingId", cfg.Bookings.Approve)
	bookings.Get("/:bookingId", cfg.Bookings.Get)
	bookings.Get("/", cfg.Bookings.ListByBooker)

	requests := app.Group("/requests")
	requests.Post("/", cfg.Requests.Create)
	requests.Get("/all", cfg.Requests.ListOthers)
	requests.Get("/:requestId", cfg.Requests.Get)
	requests.Get("/", cfg.Requests.ListOwn)
}
