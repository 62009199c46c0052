// Package routes wires repositories, services, and handlers onto the fiber
// application.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cryptowallet/internal/config"
	"cryptowallet/internal/handlers"
	"cryptowallet/internal/middleware"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/services/auth"
	"cryptowallet/internal/services/currency"
	"cryptowallet/internal/services/transaction"
	"cryptowallet/internal/services/user"
	"cryptowallet/internal/services/wallet"
)

// SetupRoutes configures all application routes, grouped by entity.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	currencyRepo := repositories.NewCurrencyRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	jwtSecret := config.GetEnv("JWT_SECRET", "")
	tokenTTL := config.GetDurationEnv("TOKEN_TTL", 15*time.Minute)

	authService := auth.NewService(userRepo, jwtSecret, tokenTTL)
	userService := user.NewService(userRepo)
	currencyService := currency.NewService(currencyRepo, repositories.CacheService)
	walletService := wallet.NewService(walletRepo, currencyRepo, txnRepo, repositories.CacheService)
	txnService := transaction.NewService(txnRepo, walletRepo, currencyRepo, repositories.CacheService)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)
	walletHandler := handlers.NewWalletHandler(walletService, userService)
	txnHandler := handlers.NewTransactionHandler(txnService, userService)

	authRequired := middleware.NewAuthMiddleware(authService, jwtSecret).Handler

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	usuarios := api.Group("/usuarios")
	usuarios.Post("/register", authHandler.Register)
	usuarios.Post("/login", authHandler.Login)
	usuarios.Post("/logout", authRequired, authHandler.Logout)
	usuarios.Get("/profile/me", authRequired, userHandler.GetMyProfile)
	usuarios.Get("/:id", userHandler.GetUser)
	usuarios.Put("/:id", authRequired, userHandler.UpdateUser)
	usuarios.Delete("/:id", authRequired, userHandler.DeleteUser)

	criptomonedas := api.Group("/criptomonedas")
	criptomonedas.Get("/", currencyHandler.ListCurrencies)
	criptomonedas.Get("/:id", currencyHandler.GetCurrency)
	criptomonedas.Post("/", currencyHandler.CreateCurrency)
	criptomonedas.Delete("/:id", currencyHandler.DeleteCurrency)

	wallets := api.Group("/wallets")
	wallets.Post("/", authRequired, walletHandler.CreateWallet)
	wallets.Get("/", walletHandler.ListWallets)
	wallets.Get("/mi-perfil/mis-wallets", authRequired, walletHandler.ListMyWallets)
	wallets.Get("/usuario/:id", walletHandler.ListUserWallets)
	wallets.Get("/:id", walletHandler.GetWallet)
	wallets.Put("/:id", authRequired, walletHandler.UpdateWallet)
	wallets.Delete("/:id", authRequired, walletHandler.DeleteWallet)

	transacciones := api.Group("/transacciones")
	transacciones.Post("/", authRequired, txnHandler.CreateTransaction)
	transacciones.Get("/", authRequired, txnHandler.ListTransactions)
	transacciones.Get("/mi-perfil/mis-transacciones", authRequired, txnHandler.ListMyTransactions)
	transacciones.Get("/usuario/:id", authRequired, txnHandler.ListUserTransactions)
	transacciones.Get("/:id", authRequired, txnHandler.GetTransaction)
	transacciones.Put("/:id", authRequired, txnHandler.UpdateTransaction)
	transacciones.Patch("/:id/estado", authRequired, txnHandler.ChangeStatus)
	transacciones.Delete("/:id", authRequired, txnHandler.DeleteTransaction)
}
