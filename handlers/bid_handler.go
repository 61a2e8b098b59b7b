package handlers

import (
	"errors"
	"log"

	"unitrade_backend/internal/bid"
	"unitrade_backend/models"
	"unitrade_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errOwnListing = errors.New("cannot bid on your own listing")

type BidHandler struct {
	DB *gorm.DB
}

func NewBidHandler(db *gorm.DB) *BidHandler {
	return &BidHandler{DB: db}
}

// PlaceBid - POST /api/products/:id/bids
// The rule is re-checked against the stored bid and the update is conditional,
// so a bid that lost a race is rejected instead of overwriting a higher one.
func (h *BidHandler) PlaceBid(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req models.BidRequest
	if err := c.BodyParser(&req); err != nil || req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a valid amount"})
	}

	var product models.Product
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if product.SellerID == userID {
			return errOwnListing
		}
		if err := bid.Check(product, req.Amount); err != nil {
			return err
		}

		result := tx.Model(&models.Product{}).
			Where("id = ? AND status = ? AND COALESCE(current_bid, price) < ?", id, models.StatusActive, req.Amount).
			Updates(map[string]interface{}{
				"current_bid": req.Amount,
				"bid_count":   gorm.Expr("bid_count + ?", 1),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.First(&product, id).Error; err != nil {
				return err
			}
			if err := bid.Check(product, req.Amount); err != nil {
				return err
			}
			return &bid.TooLowError{Current: bid.Current(product), Minimum: bid.Minimum(product), Attempt: req.Amount}
		}
		return tx.First(&product, id).Error
	})

	var tooLow *bid.TooLowError
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"product": product})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, errOwnListing):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot bid on your own listing"})
	case errors.Is(err, bid.ErrListingClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This listing is no longer accepting bids"})
	case errors.As(err, &tooLow):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":       "Please enter an amount higher than the current bid",
			"current_bid": tooLow.Current,
			"minimum_bid": tooLow.Minimum,
		})
	default:
		log.Printf("Could not place bid on product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not place bid"})
	}
}
