// Package server assembles the Fiber application: services, handlers and the
// middleware chain.
package server

import (
	"log/slog"
	"time"

	"teahouse/internal/config"
	"teahouse/internal/handlers"
	"teahouse/internal/middleware"
	"teahouse/internal/repositories"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options are the collaborators New wires together. Publisher may be nil, in
// which case no domain events are sent.
type Options struct {
	Config    *config.Config
	Store     repositories.DocumentStore
	Publisher services.EventPublisher
	Logger    *slog.Logger
}

// App is the assembled HTTP application.
type App struct {
	*fiber.App
	Auth *services.AuthService
}

// New builds the application. Routes live under /api; /health reports liveness
// and the configured store backend.
func New(opts Options) *App {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	deps := services.Deps{
		Store:     opts.Store,
		Finder:    repositories.NewLenientFinder(opts.Store),
		Publisher: opts.Publisher,
		Logger:    log,
	}
	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	composer := services.NewReferenceComposer(deps.Finder, cfg.VerifyReferences, log)

	authService := services.NewAuthService(deps, hasher, cfg.Auth)
	teaService := services.NewTeaProductService(deps)
	craftService := services.NewCraftProductService(deps)
	offerService := services.NewOfferService(deps, composer)
	eventService := services.NewEventService(deps)
	reservationService := services.NewReservationService(deps, composer)
	userService := services.NewUserService(deps, hasher)

	app := fiber.New(fiber.Config{
		AppName:      "teahouse",
		ErrorHandler: middleware.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.Store.Backend,
		})
	})

	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewProductHandler(teaService, craftService).RegisterRoutes(api, auth)
	handlers.NewOfferHandler(offerService).RegisterRoutes(api, auth)
	handlers.NewEventHandler(eventService).RegisterRoutes(api, auth)
	handlers.NewReservationHandler(reservationService).RegisterRoutes(api, auth)
	handlers.NewUserHandler(userService).RegisterRoutes(api, auth)

	app.Use(middleware.NotFound())

	return &App{App: app, Auth: authService}
}
