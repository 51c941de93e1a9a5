package domain

import "time"

// Product is a catalog item. Prices are stored in cents to avoid
// floating-point rounding in cart and order totals.
type Product struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Category    string    `bson:"category" json:"category"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Thumbnail   string    `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
