package handlers

import (
	"errors"
	"log"
	"net/url"
	"strconv"
	"time"

	"unitrade_backend/internal/listing"
	"unitrade_backend/internal/query"
	"unitrade_backend/models"
	"unitrade_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	homeRecentLimit = 4
	maxPageSize     = 100
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// activeProducts loads every active listing in catalog (id) order.
func (h *ProductHandler) activeProducts() ([]models.Product, error) {
	var products []models.Product
	err := h.DB.Where("status = ?", models.StatusActive).Order("id asc").Find(&products).Error
	return products, err
}

// GetAllProducts - GET /api/products
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.activeProducts()
	if err != nil {
		log.Printf("Could not fetch products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	products = query.Apply(products, query.FromQuery(values))

	limit := c.QueryInt("limit", 0)
	if limit <= 0 {
		return c.JSON(fiber.Map{"products": products})
	}
	limit = min(limit, maxPageSize)

	page := max(c.QueryInt("page", 1), 1)
	meta := models.NewPaginationMeta(page, limit, int64(len(products)))
	// page-1 is compared before multiplying so huge pages cannot overflow
	start := len(products)
	if page-1 < len(products)/limit+1 {
		start = min((page-1)*limit, len(products))
	}
	end := min(start+limit, len(products))
	return c.JSON(fiber.Map{"products": products[start:end], "meta": meta})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Could not load product %d: %v", id, err)
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Viewing a listing counts as a view; a failed increment does not fail the read.
	if err := h.DB.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		log.Printf("Failed to increment views for product %d: %v", id, err)
	} else {
		product.ViewCount++
	}

	return c.JSON(fiber.Map{"product": product})
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var seller models.User
	if err := h.DB.First(&seller, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	now := time.Now()
	if errs := listing.ValidateRequest(req, now); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewValidationErrors(errs))
	}
	if req.ExpiresAt.IsZero() {
		req.ExpiresAt = now.AddDate(0, 0, listing.DefaultDurationDays)
	}

	product := models.Product{
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Images:      req.Images,
		CreatedAt:   now,
		ExpiresAt:   req.ExpiresAt,
		Status:      models.StatusActive,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		log.Printf("Could not create product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

// ownedProduct loads the product in :id and checks the caller is its seller.
// On failure the response has already been written and ok is false.
func (h *ProductHandler) ownedProduct(c *fiber.Ctx) (product models.Product, ok bool, err error) {
	userID, authed := utils.UserID(c)
	if !authed {
		return product, false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, valid := productID(c)
	if !valid {
		return product, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	if err := h.DB.First(&product, id).Error; err != nil {
		return product, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Check ownership
	if product.SellerID != userID {
		return product, false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	return product, true, nil
}

// UpdateProduct - PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	product, ok, err := h.ownedProduct(c)
	if !ok {
		return err
	}

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.ExpiresAt.IsZero() {
		req.ExpiresAt = product.ExpiresAt
	}
	if errs := listing.ValidateRequest(req, product.CreatedAt); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewValidationErrors(errs))
	}

	// Update fields
	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Condition = req.Condition
	product.Location = req.Location
	product.ExpiresAt = req.ExpiresAt
	if len(req.Images) > 0 {
		product.Images = req.Images
	}

	if err := h.DB.Save(&product).Error; err != nil {
		log.Printf("Could not update product %d: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"product": product})
}

// MarkSold - POST /api/products/:id/sold
// Listings are never deleted; the seller closes them instead.
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	product, ok, err := h.ownedProduct(c)
	if !ok {
		return err
	}

	product.IsSold = true
	product.Status = models.StatusSold
	if err := h.DB.Model(&product).Updates(map[string]interface{}{
		"is_sold": true,
		"status":  models.StatusSold,
	}).Error; err != nil {
		log.Printf("Could not mark product %d sold: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"product": product})
}

// GetMyProducts - GET /api/my-products
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var products []models.Product
	if err := h.DB.Where("seller_id = ?", userID).Order("created_at desc").Order("id desc").Find(&products).Error; err != nil {
		log.Printf("Could not fetch products of seller %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"products": products})
}

// GetHome - GET /api/home
func (h *ProductHandler) GetHome(c *fiber.Ctx) error {
	products, err := h.activeProducts()
	if err != nil {
		log.Printf("Could not fetch products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	categories, err := categoriesWithCounts(h.DB)
	if err != nil {
		log.Printf("Could not fetch categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}

	view := query.Home(products, homeRecentLimit)
	return c.JSON(fiber.Map{
		"featured":   view.Featured,
		"recent":     view.Recent,
		"categories": categories,
	})
}
