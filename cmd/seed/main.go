// Package main seeds the reference currency set and an initial admin user.
package main

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cryptowallet/internal/config"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
)

func strPtr(s string) *string { return &s }

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	seedCurrencies()
	seedAdmin()
}

func seedCurrencies() {
	currencies := []models.Currency{
		{Name: "Bitcoin", Symbol: "BTC", USDValue: decimal.RequireFromString("65000")},
		{Name: "Ethereum", Symbol: "ETH", USDValue: decimal.RequireFromString("3200")},
		{Name: "Tether", Symbol: "USDT", Network: strPtr("Ethereum"), USDValue: decimal.RequireFromString("1")},
		{Name: "Solana", Symbol: "SOL", USDValue: decimal.RequireFromString("150")},
	}

	for _, cur := range currencies {
		var existing models.Currency
		if err := repositories.DB.Where("symbol = ?", cur.Symbol).First(&existing).Error; err == nil {
			continue
		}
		if err := repositories.DB.Create(&cur).Error; err != nil {
			log.Fatalf("Failed to seed currency %s: %v", cur.Symbol, err)
		}
		log.Printf("Seeded currency %s", cur.Symbol)
	}
}

func seedAdmin() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:    adminEmail,
		Username: config.GetEnv("ADMIN_USERNAME", "admin"),
		Password: string(hashed),
		IsActive: true,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Println("Admin account created")
}
