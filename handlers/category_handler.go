package handlers

import (
	"log"

	"unitrade_backend/internal/catalog"
	"unitrade_backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

// categoriesWithCounts loads the categories and counts their active products.
func categoriesWithCounts(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Category models.CategoryID
		Total    int64
	}
	if err := db.Model(&models.Product{}).
		Select("category, count(*) as total").
		Where("status = ?", models.StatusActive).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.CategoryID]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return catalog.WithCounts(ordered(categories), counts), nil
}

// ordered sorts categories into display order, unknown ids last.
func ordered(categories []models.Category) []models.Category {
	byID := make(map[models.CategoryID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	out := make([]models.Category, 0, len(categories))
	for _, id := range models.CategoryIDs {
		if c, ok := byID[id]; ok {
			out = append(out, c)
			delete(byID, id)
		}
	}
	for _, c := range categories {
		if _, ok := byID[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// GetCategories - GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := categoriesWithCounts(h.DB)
	if err != nil {
		log.Printf("Could not fetch categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}
