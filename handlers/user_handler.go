package handlers

import (
	"strconv"

	"unitrade_backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetSeller - GET /api/sellers/:id
// Returns the public profile of a seller with their active listings, newest first.
func (h *UserHandler) GetSeller(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
	}

	var user models.User
	if err := h.DB.Select("id, name, avatar_url").First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
	}

	var products []models.Product
	if err := h.DB.Where("seller_id = ? AND status = ?", user.ID, models.StatusActive).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch products",
		})
	}

	return c.JSON(fiber.Map{
		"seller":   user.Public(),
		"products": products,
	})
}
