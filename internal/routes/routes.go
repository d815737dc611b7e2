package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ridewise/ridewise-backend/internal/config"
	"github.com/ridewise/ridewise-backend/internal/handlers"
	"github.com/ridewise/ridewise-backend/internal/middleware"
	"github.com/ridewise/ridewise-backend/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	vehicleHandler *handlers.VehicleHandler,
	rideHandler *handlers.RideHandler,
	reviewHandler *handlers.ReviewHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth endpoints are public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	jwt := middleware.JWTProtected(cfg)
	driverOnly := middleware.RoleRequired(models.RoleDriver)
	passengerOnly := middleware.RoleRequired(models.RolePassenger)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/auth/me", jwt, authHandler.Me)

	// Vehicle CRUD is driver territory; the available listing and single
	// lookup are open to passengers shopping for a ride.
	api.Post("/vehicles", jwt, driverOnly, vehicleHandler.CreateVehicle)
	api.Get("/vehicles", jwt, driverOnly, vehicleHandler.ListVehicles)
	api.Get("/vehicles/available", jwt, passengerOnly, vehicleHandler.ListAvailable)
	api.Get("/vehicles/:id", jwt, vehicleHandler.GetVehicle)
	api.Put("/vehicles/:id", jwt, driverOnly, vehicleHandler.UpdateVehicle)
	api.Delete("/vehicles/:id", jwt, driverOnly, vehicleHandler.DeleteVehicle)

	// Rides
	api.Post("/rides", jwt, passengerOnly, rideHandler.RequestRide)
	api.Get("/rides", jwt, rideHandler.ListRides)
	api.Get("/rides/:id", jwt, rideHandler.GetRide)
	api.Patch("/rides/:id/status", jwt, rideHandler.UpdateStatus)

	// Reviews
	api.Post("/reviews", jwt, passengerOnly, reviewHandler.CreateReview)
	api.Get("/reviews/ride/:rideId", jwt, reviewHandler.GetRideReview)

	// Uploaded vehicle images
	app.Static("/uploads/vehicles", cfg.UploadDir)
}
