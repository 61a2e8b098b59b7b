package models

import (
	"time"
)

// Condition grades a listing from best (new) to worst (poor).
type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionLikeNew   Condition = "like-new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// Conditions lists every condition ordered by quality.
var Conditions = []Condition{
	ConditionNew,
	ConditionLikeNew,
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

func (c Condition) Valid() bool {
	return c.Rank() >= 0
}

// Rank is the position of c in Conditions, 0 being the best. Unknown conditions rank -1.
func (c Condition) Rank() int {
	for i, known := range Conditions {
		if c == known {
			return i
		}
	}
	return -1
}

const (
	StatusActive = "active"
	StatusSold   = "sold"
)

// Product is a single listing. Prices and bids are stored in minor units (cents).
type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Price       int64      `gorm:"not null" json:"price"`
	Category    CategoryID `gorm:"size:50;index" json:"category"`
	Condition   Condition  `gorm:"size:20" json:"condition"`
	Images      []string   `gorm:"serializer:json;type:text" json:"images"`

	SellerID   uint   `gorm:"index" json:"seller_id"`
	SellerName string `gorm:"size:100" json:"seller_name"`
	Location   string `gorm:"size:255" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsFeatured bool   `gorm:"default:false" json:"is_featured"`
	IsSold     bool   `gorm:"default:false" json:"is_sold"`
	Status     string `gorm:"default:'active';size:20;index" json:"status"` // active, sold

	// Counters
	ViewCount  int64  `gorm:"default:0" json:"view_count"`
	BidCount   int64  `gorm:"default:0" json:"bid_count"`
	CurrentBid *int64 `json:"current_bid,omitempty"`
}
