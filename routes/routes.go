// Package routes wires handlers into a Fiber app.
package routes

import (
	"unitrade_backend/config"
	"unitrade_backend/handlers"
	"unitrade_backend/internal/imagestore"
	"unitrade_backend/middleware"
	"unitrade_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NewApp builds the HTTP API over db. images receives listing photo uploads.
func NewApp(cfg *config.Config, db *gorm.DB, images imagestore.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "UniTrade Backend",
		ServerHeader: "UniTrade Backend Server/1.0",
		BodyLimit:    8 << 20,
		ErrorHandler: middleware.ErrorHandler,
	})

	middleware.SetupMiddleware(app, cfg)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	if disk, ok := images.(*imagestore.Disk); ok {
		app.Static(disk.URLPrefix, disk.Dir)
	}

	authRequired := utils.AuthMiddleware(cfg.JWTSecret)

	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.JWTExpiration)
	productHandler := handlers.NewProductHandler(db)
	bidHandler := handlers.NewBidHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	userHandler := handlers.NewUserHandler(db)
	uploadHandler := handlers.NewUploadHandler(images)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)

	products := api.Group("/products")
	products.Get("/", productHandler.GetAllProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", authRequired, productHandler.CreateProduct)
	products.Put("/:id", authRequired, productHandler.UpdateProduct)
	products.Post("/:id/sold", authRequired, productHandler.MarkSold)
	products.Post("/:id/bids", authRequired, bidHandler.PlaceBid)

	api.Get("/my-products", authRequired, productHandler.GetMyProducts)
	api.Get("/home", productHandler.GetHome)
	api.Get("/categories", categoryHandler.GetCategories)
	api.Get("/sellers/:id", userHandler.GetSeller)
	api.Post("/uploads", authRequired, uploadHandler.UploadImage)

	middleware.SetupErrorHandler(app)

	return app
}
