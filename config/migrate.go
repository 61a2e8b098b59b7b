package config

import (
	"log"
	"unitrade_backend/models"

	"gorm.io/gorm"
)

func tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
	}
}

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(tables()...)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database Migrations completed succesfully...")

	// Ensure categories are seeded even on normal migration
	return SeedCategories(db)
}

func ResetAndMigrate(db *gorm.DB) error {
	// Drop all tables
	if err := db.Migrator().DropTable(tables()...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(tables()...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	if err := SeedCategories(db); err != nil {
		return err
	}
	if err := SeedUsers(db); err != nil {
		return err
	}
	if err := SeedProducts(db); err != nil {
		return err
	}

	log.Println("Database reset and migration completed successfully.")
	return nil
}
