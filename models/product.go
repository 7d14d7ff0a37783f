package models

import "time"

// Product prices are stored exactly as the catalog publishes them:
// currency-prefixed strings such as "Php100.00". Parsing happens in the
// pricing service, never in SQL.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
