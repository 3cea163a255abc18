package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-api/internal/application/auth"
	"github.com/invorya/stock-api/internal/application/ledger"
	"github.com/invorya/stock-api/internal/application/product"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *product.ProductUseCase
	LedgerUC  *ledger.LedgerUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Las lecturas de catálogo e histórico
// son públicas; las mutaciones y los movimientos requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify", authHandler.VerifyCode)
	authGroup.Post("/resend-code", authHandler.ResendCode)
	authGroup.Get("/me", protected, authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protected, productHandler.Create)
	products.Put("/:id", protected, productHandler.Update)
	products.Delete("/:id", protected, productHandler.Delete)

	// Stock ledger
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock := api.Group("/stock")
	stock.Post("/entry", protected, stockHandler.Entry)
	stock.Post("/exit", protected, stockHandler.Exit)
	stock.Get("/history", stockHandler.History)
	stock.Get("/history/:productId", stockHandler.HistoryByProduct)
}
