package catalog

import (
	"time"

	"unitrade_backend/models"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func bidOf(v int64) *int64 { return &v }

// Products returns a fresh copy of the fixture listings.
func Products() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Title:       "MacBook Pro 16-inch (2023)",
			Description: "Apple M2 Pro chip, 16GB RAM, 512GB SSD, Space Gray. Only used for 6 months, in excellent condition with original box and accessories.",
			Price:       149999,
			Category:    models.CategoryElectronics,
			Condition:   models.ConditionExcellent,
			Images: []string{
				"https://images.pexels.com/photos/812264/pexels-photo-812264.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
				"https://images.pexels.com/photos/1229861/pexels-photo-1229861.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			},
			SellerID:   1,
			SellerName: "Alex Johnson",
			Location:   "Engineering Building",
			CreatedAt:  mustTime("2023-09-15T10:30:00Z"),
			ExpiresAt:  mustTime("2023-10-15T10:30:00Z"),
			IsFeatured: true,
			Status:     models.StatusActive,
			ViewCount:  243,
			BidCount:   5,
			CurrentBid: bidOf(149999),
		},
		{
			ID:          2,
			Title:       "Calculus: Early Transcendentals (8th Edition)",
			Description: "Textbook for Calculus I and II. Minimal highlighting, no writing or damage. ISBN: 978-1285741550.",
			Price:       1499,
			Category:    models.CategoryBooks,
			Condition:   models.ConditionGood,
			Images: []string{
				"https://images.pexels.com/photos/2665119/pexels-photo-2665119.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			},
			SellerID:   2,
			SellerName: "Maria Garcia",
			Location:   "Math & Science Building",
			CreatedAt:  mustTime("2023-09-18T14:45:00Z"),
			ExpiresAt:  mustTime("2023-10-18T14:45:00Z"),
			Status:     models.StatusActive,
			ViewCount:  87,
			BidCount:   2,
			CurrentBid: bidOf(1499),
		},
		{
			ID:          3,
			Title:       "Wilson Pro Staff RF97 Tennis Racket",
			Description: "Roger Federer signature model. Used for one season, in great condition with original bag. Strung with Wilson Natural Gut 16/Luxilon ALU Power Rough 16L.",
			Price:       7999,
			Category:    models.CategorySports,
			Condition:   models.ConditionGood,
			Images: []string{
				"https://images.pexels.com/photos/209977/pexels-photo-209977.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			},
			SellerID:   3,
			SellerName: "David Kim",
			Location:   "Athletics Complex",
			CreatedAt:  mustTime("2023-09-10T09:15:00Z"),
			ExpiresAt:  mustTime("2023-10-10T09:15:00Z"),
			Status:     models.StatusActive,
			ViewCount:  64,
			BidCount:   1,
			CurrentBid: bidOf(7999),
		},
		{
			ID:          4,
			Title:       "IKEA MALM Desk",
			Description: "White MALM desk with pull-out panel, 151x65cm. Purchased last year, still in very good condition. Easy to disassemble for transport.",
			Price:       3999,
			Category:    models.CategoryFurniture,
			Condition:   models.ConditionGood,
			Images: []string{
				"https://images.pexels.com/photos/2982449/pexels-photo-2982449.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			},
			SellerID:   4,
			SellerName: "Sophie Williams",
			Location:   "Off-campus Housing",
			CreatedAt:  mustTime("2023-09-20T16:30:00Z"),
			ExpiresAt:  mustTime("2023-10-20T16:30:00Z"),
			Status:     models.StatusActive,
			ViewCount:  102,
			BidCount:   3,
			CurrentBid: bidOf(3999),
		},
		{
			ID:          5,
			Title:       "iPad Pro 11-inch (2022)",
			Description: "M2 chip, 256GB, Space Gray with Apple Pencil 2nd gen and Magic Keyboard. Perfect for digital note-taking and design work.",
			Price:       74999,
			Category:    models.CategoryElectronics,
			Condition:   models.ConditionLikeNew,
			Images: []string{
				"https://images.pexels.com/photos/1334597/pexels-photo-1334597.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
			},
			SellerID:   5,
			SellerName: "James Rodriguez",
			Location:   "Student Union",
			CreatedAt:  mustTime("2023-09-12T11:20:00Z"),
			ExpiresAt:  mustTime("2023-10-12T11:20:00Z"),
			IsFeatured: true,
			Status:     models.StatusActive,
			ViewCount:  178,
			BidCount:   4,
			CurrentBid: bidOf(74999),
		},
	}
}

// Categories returns the category reference data in display order.
func Categories() []models.Category {
	return []models.Category{
		{ID: models.CategoryElectronics, Name: "Electronics", Description: "Laptops, phones, tablets, cameras and more", Icon: "laptop", Color: "bg-blue-500"},
		{ID: models.CategoryBooks, Name: "Books", Description: "Textbooks, novels, study guides and more", Icon: "book-open", Color: "bg-green-500"},
		{ID: models.CategorySports, Name: "Sports", Description: "Equipment, apparel, accessories and more", Icon: "dumbbell", Color: "bg-orange-500"},
		{ID: models.CategoryFurniture, Name: "Furniture", Description: "Desks, chairs, beds, storage and more", Icon: "sofa", Color: "bg-purple-500"},
		{ID: models.CategoryClothing, Name: "Clothing", Description: "Clothes, shoes, accessories and more", Icon: "shopping-bag", Color: "bg-pink-500"},
		{ID: models.CategoryVehicles, Name: "Vehicles", Description: "Cars, bikes, scooters and more", Icon: "car", Color: "bg-red-500"},
		{ID: models.CategoryServices, Name: "Services", Description: "Tutoring, repairs, lessons and more", Icon: "wrench", Color: "bg-yellow-500"},
		{ID: models.CategoryOther, Name: "Other", Description: "Everything else that doesn't fit above", Icon: "package", Color: "bg-gray-500"},
	}
}

// Sellers are the accounts that own the fixture listings, keyed by SellerID.
func Sellers() []models.User {
	return []models.User{
		{ID: 1, Name: "Alex Johnson", Email: "alex.johnson@unitrade.test", AvatarURL: "https://randomuser.me/api/portraits/men/32.jpg"},
		{ID: 2, Name: "Maria Garcia", Email: "maria.garcia@unitrade.test", AvatarURL: "https://randomuser.me/api/portraits/women/65.jpg"},
		{ID: 3, Name: "David Kim", Email: "david.kim@unitrade.test", AvatarURL: "https://randomuser.me/api/portraits/men/22.jpg"},
		{ID: 4, Name: "Sophie Williams", Email: "sophie.williams@unitrade.test", AvatarURL: "https://randomuser.me/api/portraits/women/33.jpg"},
		{ID: 5, Name: "James Rodriguez", Email: "james.rodriguez@unitrade.test", AvatarURL: "https://randomuser.me/api/portraits/men/43.jpg"},
	}
}
