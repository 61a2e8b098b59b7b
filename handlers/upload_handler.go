package handlers

import (
	"log"
	"path/filepath"
	"strings"

	"unitrade_backend/internal/imagestore"

	"github.com/gofiber/fiber/v2"
)

// maxImageSize caps a single upload at 5MB.
const maxImageSize = 5 << 20

// UploadHandler handles file uploads
type UploadHandler struct {
	Store imagestore.Store
}

func NewUploadHandler(store imagestore.Store) *UploadHandler {
	return &UploadHandler{Store: store}
}

// UploadImage - POST /api/uploads
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	// Parse the multipart form:
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	// Validate file type (simple check extension)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := imagestore.AllowedExtensions[ext]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only .jpg, .jpeg, and .png files are allowed",
		})
	}
	if file.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image must be 5MB or smaller",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}
	defer src.Close()

	url, err := h.Store.Save(c.UserContext(), imagestore.NewKey(file.Filename), contentType, src)
	if err != nil {
		log.Printf("Could not save upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
