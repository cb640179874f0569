package services

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

type fakeCatalogStore struct {
	products map[primitive.ObjectID]*models.Product
	updates  map[primitive.ObjectID]bson.M
	deleted  []primitive.ObjectID
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		products: make(map[primitive.ObjectID]*models.Product),
		updates:  make(map[primitive.ObjectID]bson.M),
	}
}

func (f *fakeCatalogStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCatalogStore) Find(_ context.Context, filter bson.M, _ *options.FindOptions) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if category, ok := filter["category"]; ok && p.Category != category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCatalogStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	products, err := f.Find(ctx, filter, nil)
	return int64(len(products)), err
}

func (f *fakeCatalogStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return nil
}

func (f *fakeCatalogStore) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	f.updates[id] = updates
	return nil
}

func (f *fakeCatalogStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.products, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalogStore) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func TestProductCreateDefaultsInStock(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewProductService(store)

	product, err := svc.Create(context.Background(), models.CreateProductRequest{
		Name: "Wool Scarf", Price: 45, Category: "accessories",
	})
	require.NoError(t, err)
	assert.True(t, product.InStock)
	assert.NotNil(t, product.Sizes)
	assert.False(t, product.ID.IsZero())
}

func TestProductCreateNegativePrice(t *testing.T) {
	svc := NewProductService(newFakeCatalogStore())

	_, err := svc.Create(context.Background(), models.CreateProductRequest{
		Name: "Wool Scarf", Price: -1, Category: "accessories",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestProductUpdateBuildsPartialUpdate(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewProductService(store)
	ctx := context.Background()

	product, err := svc.Create(ctx, models.CreateProductRequest{Name: "Wool Scarf", Price: 45, Category: "accessories"})
	require.NoError(t, err)

	price := 50.0
	_, err = svc.Update(ctx, product.ID.Hex(), models.UpdateProductRequest{Price: &price})
	require.NoError(t, err)

	updates := store.updates[product.ID]
	require.NotNil(t, updates)
	assert.Equal(t, 50.0, updates["price"])
	assert.NotContains(t, updates, "name")
}

func TestProductUpdateNothingToUpdate(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewProductService(store)
	ctx := context.Background()

	product, err := svc.Create(ctx, models.CreateProductRequest{Name: "Wool Scarf", Price: 45, Category: "accessories"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, product.ID.Hex(), models.UpdateProductRequest{})
	require.Error(t, err)
}

func TestProductDeleteUnknown(t *testing.T) {
	svc := NewProductService(newFakeCatalogStore())

	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestProductListClampsPaging(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewProductService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateProductRequest{Name: "Wool Scarf", Price: 45, Category: "accessories"})
	require.NoError(t, err)

	page, err := svc.List(ctx, models.ProductQuery{Page: -3, Limit: 100000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Products, 1)
}

func TestProductCategories(t *testing.T) {
	store := newFakeCatalogStore()
	svc := NewProductService(store)
	ctx := context.Background()

	for _, cat := range []string{"shoes", "accessories", "shoes"} {
		_, err := svc.Create(ctx, models.CreateProductRequest{Name: "p-" + cat, Price: 10, Category: cat})
		require.NoError(t, err)
	}

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"accessories", "shoes"}, categories)
}
