package domain

import "time"

type Product struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64   `bson:"price" json:"price"`
	Images       []string  `bson:"images" json:"images"`
	Category     string    `bson:"category,omitempty" json:"category,omitempty"`
	Sizes        []string  `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors       []string  `bson:"colors,omitempty" json:"colors,omitempty"`
	CountInStock int       `bson:"count_in_stock" json:"countInStock"`
	Rating       float64   `bson:"rating" json:"rating"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// FirstImage returns the product's display image, or "" when it has none.
func (p Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
