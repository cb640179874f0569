package services

import (
	"context"
	"errors"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// CatalogStore is the product persistence the service needs.
type CatalogStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
}

// ProductService serves the catalog.
type ProductService struct {
	products CatalogStore
}

func NewProductService(products CatalogStore) *ProductService {
	return &ProductService{products: products}
}

// List returns a page of the catalog, optionally filtered by search term
// and category.
func (s *ProductService) List(ctx context.Context, query models.ProductQuery) (*models.ProductPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}

	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Search != "" {
		filter["name"] = bson.M{"$regex": query.Search, "$options": "i"}
	}

	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("Failed to load products", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((query.Page - 1) * query.Limit)).
		SetLimit(int64(query.Limit))
	products, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("Failed to load products", err)
	}

	return &models.ProductPage{
		Products:    products,
		TotalPages:  int64(math.Ceil(float64(total) / float64(query.Limit))),
		CurrentPage: query.Page,
		Total:       total,
	}, nil
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid product id")
	}
	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return product, nil
}

// Create adds a catalog entry.
func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Price < 0 {
		return nil, apperrors.BadRequest("Price must not be negative")
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	sizes := req.Sizes
	if sizes == nil {
		sizes = []string{}
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Sizes:       sizes,
		InStock:     inStock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to create product", err)
	}
	return product, nil
}

// Update applies the non-nil fields of req to a catalog entry.
func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid product id")
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperrors.BadRequest("Price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Sizes != nil {
		updates["sizes"] = *req.Sizes
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("Nothing to update")
	}

	if _, err := s.products.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}
	if err := s.products.Update(ctx, oid, updates); err != nil {
		return nil, apperrors.Internal("Failed to update product", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a catalog entry.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.BadRequest("Invalid product id")
	}
	if _, err := s.products.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Internal("Failed to load product", err)
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return apperrors.Internal("Failed to delete product", err)
	}
	return nil
}

// Categories lists the distinct category names.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load categories", err)
	}
	return categories, nil
}
