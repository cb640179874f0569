package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	InStock     bool               `bson:"in_stock" json:"inStock"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"-"`
}

// CreateProductRequest is the catalog-entry creation body.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category" binding:"required"`
	Image       string   `json:"image"`
	Sizes       []string `json:"sizes"`
	InStock     *bool    `json:"inStock"`
}

// UpdateProductRequest carries the fields to change; nil pointers are left
// untouched.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	Sizes       *[]string `json:"sizes"`
	InStock     *bool     `json:"inStock"`
}

// ProductPage is the paginated catalog listing.
type ProductPage struct {
	Products    []Product `json:"products"`
	TotalPages  int64     `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int64     `json:"total"`
}

// ProductQuery carries the catalog listing filters.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}
