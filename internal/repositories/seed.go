package repositories

import (
	"fmt"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/models"
)

// sampleCatalog is inserted into an empty products table on first start.
var sampleCatalog = []models.Product{
	{Name: "Wireless Headphones", Price: 79.99, Rating: 4.5, Category: "Electronics", Description: "High-quality wireless headphones with noise cancellation", ImageURL: "https://via.placeholder.com/300?text=Headphones", Stock: 50},
	{Name: "USB-C Cable", Price: 14.99, Rating: 4.8, Category: "Accessories", Description: "Durable USB-C charging and data cable", ImageURL: "https://via.placeholder.com/300?text=USB-C+Cable", Stock: 200},
	{Name: "Smartphone Stand", Price: 19.99, Rating: 4.7, Category: "Accessories", Description: "Adjustable smartphone stand for desk", ImageURL: "https://via.placeholder.com/300?text=Phone+Stand", Stock: 100},
	{Name: "Wireless Mouse", Price: 34.99, Rating: 4.6, Category: "Electronics", Description: "Ergonomic wireless mouse with precision tracking", ImageURL: "https://via.placeholder.com/300?text=Wireless+Mouse", Stock: 75},
	{Name: "Mechanical Keyboard", Price: 89.99, Rating: 4.9, Category: "Electronics", Description: "RGB mechanical keyboard with switches", ImageURL: "https://via.placeholder.com/300?text=Keyboard", Stock: 40},
	{Name: "Screen Protector", Price: 9.99, Rating: 4.4, Category: "Accessories", Description: "Tempered glass screen protector for smartphones", ImageURL: "https://via.placeholder.com/300?text=Screen+Protector", Stock: 300},
	{Name: "Phone Case", Price: 24.99, Rating: 4.6, Category: "Accessories", Description: "Premium protective phone case with design patterns", ImageURL: "https://via.placeholder.com/300?text=Phone+Case", Stock: 150},
	{Name: "Portable Charger", Price: 49.99, Rating: 4.7, Category: "Electronics", Description: "20000mAh portable charger with fast charging", ImageURL: "https://via.placeholder.com/300?text=Portable+Charger", Stock: 60},
	{Name: "Laptop Stand", Price: 39.99, Rating: 4.5, Category: "Accessories", Description: "Adjustable aluminum laptop stand for better ergonomics", ImageURL: "https://via.placeholder.com/300?text=Laptop+Stand", Stock: 80},
	{Name: "HDMI Cable", Price: 12.99, Rating: 4.8, Category: "Accessories", Description: "High-speed HDMI 2.1 cable for 4K video", ImageURL: "https://via.placeholder.com/300?text=HDMI+Cable", Stock: 250},
	{Name: "USB Hub", Price: 29.99, Rating: 4.5, Category: "Electronics", Description: "7-port USB 3.0 hub with fast charging", ImageURL: "https://via.placeholder.com/300?text=USB+Hub", Stock: 90},
	{Name: "Desk Lamp", Price: 44.99, Rating: 4.6, Category: "Accessories", Description: "LED desk lamp with adjustable brightness and color", ImageURL: "https://via.placeholder.com/300?text=Desk+Lamp", Stock: 55},
}

// SeedProducts populates an empty catalog with the sample products and
// returns how many were inserted. A non-empty catalog is left untouched.
func SeedProducts(repo ProductRepository) (int, error) {
	count, err := repo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range sampleCatalog {
		product := sampleCatalog[i]
		if err := repo.Create(&product); err != nil {
			return i, fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
		log.Printf("Seeded product: %s (ID: %s)", product.Name, product.ID)
	}
	return len(sampleCatalog), nil
}
