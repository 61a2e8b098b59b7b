package listing

import (
	"slices"
	"sort"
	"strings"
	"time"

	"unitrade_backend/internal/money"
	"unitrade_backend/models"
)

// MaxImages is the number of images a listing keeps; later attachments are dropped.
const MaxImages = 5

// DefaultDurationDays is used when a draft does not choose a duration.
const DefaultDurationDays = 7

// DurationDays are the listing durations a seller may pick.
var DurationDays = []int{3, 7, 14, 30}

// ValidationErrors maps a field name to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid listing: " + strings.Join(parts, "; ")
}

// Draft is a listing being composed by a seller.
type Draft struct {
	Title        string
	Description  string
	Price        string
	Category     models.CategoryID
	Condition    models.Condition
	Location     string
	Images       []string
	DurationDays int
}

// AddImage attaches an image. Attachments past MaxImages are silently dropped.
func (d *Draft) AddImage(ref string) {
	if len(d.Images) >= MaxImages {
		return
	}
	d.Images = append(d.Images, ref)
}

func (d *Draft) RemoveImage(i int) {
	if i < 0 || i >= len(d.Images) {
		return
	}
	d.Images = append(d.Images[:i:i], d.Images[i+1:]...)
}

// Validate reports every violated field of d at once.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(d.Price) == "" {
		errs["price"] = "Price is required"
	} else if v, err := money.Parse(d.Price); err != nil || v <= 0 {
		errs["price"] = "Please enter a valid price"
	}
	if d.Category == "" {
		errs["category"] = "Category is required"
	} else if !d.Category.Valid() {
		errs["category"] = "Please choose a valid category"
	}
	if d.Condition == "" {
		errs["condition"] = "Condition is required"
	} else if !d.Condition.Valid() {
		errs["condition"] = "Please choose a valid condition"
	}
	if strings.TrimSpace(d.Location) == "" {
		errs["location"] = "Location is required"
	}
	if len(d.Images) == 0 {
		errs["images"] = "At least one image is required"
	}
	if d.DurationDays != 0 && !slices.Contains(DurationDays, d.DurationDays) {
		errs["duration"] = "Please choose a listing duration"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Request converts a valid draft into the API payload.
func (d Draft) Request(now time.Time) models.CreateProductRequest {
	price, _ := money.Parse(d.Price)
	days := d.DurationDays
	if days == 0 {
		days = DefaultDurationDays
	}
	return models.CreateProductRequest{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		Category:    d.Category,
		Condition:   d.Condition,
		Location:    strings.TrimSpace(d.Location),
		ExpiresAt:   now.AddDate(0, 0, days),
		Images:      append([]string(nil), d.Images...),
	}
}

// ValidateRequest checks a create/update payload received by the API.
// Images are optional on the wire; at most MaxImages are accepted.
func ValidateRequest(req models.CreateProductRequest, now time.Time) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		errs["description"] = "Description is required"
	}
	if req.Price <= 0 {
		errs["price"] = "Please enter a valid price"
	}
	if !req.Category.Valid() {
		errs["category"] = "Category is required"
	}
	if !req.Condition.Valid() {
		errs["condition"] = "Condition is required"
	}
	if strings.TrimSpace(req.Location) == "" {
		errs["location"] = "Location is required"
	}
	if !req.ExpiresAt.IsZero() && req.ExpiresAt.Before(now) {
		errs["expires_at"] = "Expiry must not be in the past"
	}
	if len(req.Images) > MaxImages {
		errs["images"] = "At most 5 images are allowed"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
