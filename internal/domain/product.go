package domain

import "time"

// Product is a catalog entry. List-valued fields are stored as JSON columns
// and are always materialized as slices, never null.
type Product struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Category    string    `gorm:"index" json:"category" form:"category"`
	Price       float64   `json:"price" form:"price"`
	Stock       int       `json:"stock" form:"stock"`
	Description string    `json:"description" form:"description"`
	Advantages  string    `json:"advantages" form:"advantages"`
	Uses        string    `json:"uses" form:"uses"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Features    []string  `gorm:"serializer:json" json:"features"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "catalog_product"
}
