package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

type fakeCartStore struct {
	carts   map[string]*models.Cart
	saveErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartStore) DeleteCart(_ context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
}

func (f *fakeCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakeOrderCreator struct {
	created []*models.Order
	err     error
}

func (f *fakeOrderCreator) Create(_ context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = primitive.NewObjectID()
	f.created = append(f.created, order)
	return nil
}

type fakeUserLookup struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUserLookup) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

type recordedEvent struct {
	topic   string
	key     string
	payload interface{}
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	f.events = append(f.events, recordedEvent{topic: topic, key: key, payload: payload})
	return nil
}

type cartFixture struct {
	service   *CartService
	store     *fakeCartStore
	catalog   *fakeCatalog
	orders    *fakeOrderCreator
	publisher *fakePublisher
	userID    string
	productID primitive.ObjectID
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	userOID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	store := newFakeCartStore()
	catalog := &fakeCatalog{products: map[primitive.ObjectID]*models.Product{
		productID: {ID: productID, Name: "Canvas Sneakers", Price: 150, Image: "sneakers.jpg", InStock: true},
	}}
	orders := &fakeOrderCreator{}
	users := &fakeUserLookup{users: map[primitive.ObjectID]*models.User{
		userOID: {ID: userOID, Email: "shopper@example.com"},
	}}
	publisher := &fakePublisher{}

	return &cartFixture{
		service:   NewCartService(store, catalog, orders, users, publisher, "order.created", zap.NewNop()),
		store:     store,
		catalog:   catalog,
		orders:    orders,
		publisher: publisher,
		userID:    userOID.Hex(),
		productID: productID,
	}
}

func TestCartServiceGetCreatesEmptyCart(t *testing.T) {
	fx := newCartFixture(t)

	cart, err := fx.service.Get(context.Background(), fx.userID)
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestCartServiceAddMergesSameProductAndSize(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()
	req := models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 2, Size: "M"}

	cart, err := fx.service.Add(ctx, fx.userID, req)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	firstID := cart.Items[0].ID
	assert.NotEmpty(t, firstID)

	cart, err = fx.service.Add(ctx, fx.userID, req)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, firstID, cart.Items[0].ID)
}

func TestCartServiceAddDifferentSizeIsNewLine(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()

	_, err := fx.service.Add(ctx, fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 1, Size: "M"})
	require.NoError(t, err)
	cart, err := fx.service.Add(ctx, fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 1, Size: "L"})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestCartServiceAddOutOfStock(t *testing.T) {
	fx := newCartFixture(t)
	fx.catalog.products[fx.productID].InStock = false

	_, err := fx.service.Add(context.Background(), fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 1})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "out of stock")
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	fx := newCartFixture(t)

	_, err := fx.service.Add(context.Background(), fx.userID, models.AddItemRequest{ProductID: primitive.NewObjectID().Hex(), Quantity: 1})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartServiceAddDefaultsQuantityToOne(t *testing.T) {
	fx := newCartFixture(t)

	cart, err := fx.service.Add(context.Background(), fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartServiceUpdateItemRejectsZeroQuantity(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()
	cart, err := fx.service.Add(ctx, fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 1})
	require.NoError(t, err)

	_, err = fx.service.UpdateItem(ctx, fx.userID, cart.Items[0].ID, models.UpdateItemRequest{Quantity: 0})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCartServiceUpdateItemUnknownID(t *testing.T) {
	fx := newCartFixture(t)

	_, err := fx.service.UpdateItem(context.Background(), fx.userID, "nope", models.UpdateItemRequest{Quantity: 2})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartServiceRemoveItem(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()
	cart, err := fx.service.Add(ctx, fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 1})
	require.NoError(t, err)

	cart, err = fx.service.Remove(ctx, fx.userID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartServiceCheckoutEmptyCart(t *testing.T) {
	fx := newCartFixture(t)

	_, err := fx.service.Checkout(context.Background(), fx.userID, models.CheckoutRequest{})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "empty")
}

func TestCartServiceCheckout(t *testing.T) {
	fx := newCartFixture(t)
	ctx := context.Background()
	_, err := fx.service.Add(ctx, fx.userID, models.AddItemRequest{ProductID: fx.productID.Hex(), Quantity: 2})
	require.NoError(t, err)

	order, err := fx.service.Checkout(ctx, fx.userID, models.CheckoutRequest{
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, 300.0, order.Total)
	require.Len(t, fx.orders.created, 1)

	// cart is gone after checkout
	cart, err := fx.service.Get(ctx, fx.userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// order event carries the account email
	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, "order.created", fx.publisher.events[0].topic)
	event, ok := fx.publisher.events[0].payload.(models.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "shopper@example.com", event.Email)
	assert.Equal(t, 2, event.ItemCount)
	assert.Equal(t, 300.0, event.Total)
}
