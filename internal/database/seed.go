package database

import (
	"os"

	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin ensures one admin account exists so payouts can be operated
// from a fresh database.
func SeedAdmin(db *gorm.DB) {
	log := logger.Get()
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("admin seed: hash failed")
		return
	}
	admin := &models.User{
		Name:         "Admin",
		Email:        email,
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		log.Error().Err(err).Msg("admin seed: create failed")
		return
	}
	log.Info().Str("email", email).Msg("admin user seeded")
}
