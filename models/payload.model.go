package models

import "time"

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateProductRequest is the body of POST /api/products and PUT /api/products/:id.
// Price is in minor units.
type CreateProductRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Category    CategoryID `json:"category"`
	Condition   Condition  `json:"condition"`
	Location    string     `json:"location"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Images      []string   `json:"images"`
}

// BidRequest is the body of POST /api/products/:id/bids. Amount is in minor units.
type BidRequest struct {
	Amount int64 `json:"amount"`
}
