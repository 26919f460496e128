package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/config"
	"github.com/example/grocery/internal/handlers"
	"github.com/example/grocery/internal/middleware"
	"github.com/example/grocery/internal/services"
	"github.com/example/grocery/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	st := store.New(db)

	verificationService := services.NewVerificationService(st)
	emailService := services.NewEmailService(cfg)
	stripeService := services.NewStripeService(cfg)

	authHandler := handlers.NewAuthHandler(st, cfg)
	catalogHandler := handlers.NewCatalogHandler(st)
	orderHandler := handlers.NewOrderHandler(st)
	userHandler := handlers.NewUserHandler(st)
	cardHandler := handlers.NewCardHandler(st)
	resetHandler := handlers.NewPasswordResetHandler(st, verificationService, emailService)
	paymentHandler := handlers.NewPaymentHandler(stripeService)

	api := app.Group("/api")

	api.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Grocery Store API is working!",
			"timestamp": time.Now(),
		})
	})

	// Catalog
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)

	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/search/:term", catalogHandler.SearchProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Put("/products/:id", catalogHandler.UpdateProduct)

	api.Get("/bundles", catalogHandler.ListBundles)
	api.Get("/bundles/:id", catalogHandler.GetBundle)
	api.Post("/bundles", catalogHandler.CreateBundle)
	api.Put("/bundles/:id", catalogHandler.UpdateBundle)

	// Orders
	api.Post("/orders", orderHandler.CreateOrder)
	api.Get("/orders", orderHandler.ListOrders)
	api.Get("/orders/by-order-id/:orderId", orderHandler.GetOrderByNumber)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Put("/orders/:id/status", orderHandler.UpdateOrderStatus)

	// Users
	api.Post("/users/register", authHandler.Register)
	api.Post("/users/login", authHandler.Login)
	api.Get("/users/phone/:phone", userHandler.GetUserByPhone)
	api.Get("/users/:id", userHandler.GetUser)
	api.Put("/users/:id", userHandler.UpdateUser)
	api.Get("/users/:userId/orders", orderHandler.ListUserOrders)

	// Cards
	api.Get("/users/:userId/cards", cardHandler.ListCards)
	api.Post("/users/:userId/cards", cardHandler.AddCard)
	api.Put("/users/:userId/cards/:cardId", cardHandler.UpdateCard)
	api.Delete("/users/:userId/cards/:cardId", cardHandler.DeleteCard)

	// Password reset
	auth := api.Group("/auth")
	auth.Post("/forgot-password", resetHandler.ForgotPassword)
	auth.Post("/verify-reset-code", resetHandler.VerifyResetCode)
	auth.Post("/reset-password", resetHandler.ResetPassword)
	auth.Post("/purge-expired-codes", resetHandler.PurgeExpiredCodes)

	// Payments
	payments := api.Group("/payments")
	payments.Post("/create-payment-link", paymentHandler.CreatePaymentLink)
	payments.Post("/webhook", paymentHandler.Webhook)

	// Profile (JWT protected)
	profile := api.Group("/profile", middleware.AuthMiddleware(cfg))
	profile.Get("/", userHandler.GetProfile)
	profile.Put("/", userHandler.UpdateProfile)
	profile.Put("/password", userHandler.ChangePassword)
	profile.Delete("/", userHandler.DeleteAccount)
}
