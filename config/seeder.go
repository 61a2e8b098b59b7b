package config

import (
	"errors"
	"log"
	"unitrade_backend/internal/catalog"
	"unitrade_backend/models"
	"unitrade_backend/utils"

	"gorm.io/gorm"
)

// SeedPassword is the password of every seeded seller account.
const SeedPassword = "password123"

func SeedCategories(db *gorm.DB) error {
	for _, category := range catalog.Categories() {
		var existing models.Category
		err := db.Where("id = ?", category.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Failed to seed category %s: %v", category.ID, err)
			return err
		}
	}
	return nil
}

func SeedUsers(db *gorm.DB) error {
	log.Println("🌱 Seeding users...")

	password, err := utils.HashPassword(SeedPassword)
	if err != nil {
		return err
	}

	for _, user := range catalog.Sellers() {
		user.PasswordHash = password

		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Failed to seed user %s: %v", user.Email, err)
				return err
			}
			log.Printf("User seeded: %s (ID: %d)", user.Name, user.ID)
		} else {
			log.Printf("User already exists: %s", user.Email)
		}
	}

	log.Println("✅ Seeding complete.")
	return nil
}

func SeedProducts(db *gorm.DB) error {
	log.Println("🌱 Seeding products...")

	for _, product := range catalog.Products() {
		var existing models.Product
		err := db.First(&existing, product.ID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Failed to seed product %s: %v", product.Title, err)
			return err
		}
	}
	return nil
}
