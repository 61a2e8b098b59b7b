package models

// CategoryID is the stable key of a category.
type CategoryID string

const (
	CategoryElectronics CategoryID = "electronics"
	CategoryBooks       CategoryID = "books"
	CategorySports      CategoryID = "sports"
	CategoryFurniture   CategoryID = "furniture"
	CategoryClothing    CategoryID = "clothing"
	CategoryVehicles    CategoryID = "vehicles"
	CategoryServices    CategoryID = "services"
	CategoryOther       CategoryID = "other"
)

var CategoryIDs = []CategoryID{
	CategoryElectronics,
	CategoryBooks,
	CategorySports,
	CategoryFurniture,
	CategoryClothing,
	CategoryVehicles,
	CategoryServices,
	CategoryOther,
}

func (id CategoryID) Valid() bool {
	for _, known := range CategoryIDs {
		if id == known {
			return true
		}
	}
	return false
}

type Category struct {
	ID          CategoryID `gorm:"primaryKey;size:50" json:"id"`
	Name        string     `gorm:"size:100;not null;unique" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
	Icon        string     `gorm:"size:50" json:"icon"`
	Color       string     `gorm:"size:50" json:"color"`

	// Count is derived from products on every read, never stored.
	Count int64 `gorm:"-" json:"count"`
}
