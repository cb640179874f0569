package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) FindForUser(_ context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	if o, ok := f.orders[id]; ok && o.User == userID {
		return o, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.orders[id].Status = status
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.orders, id)
	return nil
}

func newOrderFixture() (*OrderService, *fakeOrderStore, *fakePublisher, string) {
	userOID := primitive.NewObjectID()
	store := newFakeOrderStore()
	users := &fakeUserLookup{users: map[primitive.ObjectID]*models.User{
		userOID: {ID: userOID, Email: "shopper@example.com"},
	}}
	publisher := &fakePublisher{}
	svc := NewOrderService(store, users, publisher, "order.created", zap.NewNop())
	return svc, store, publisher, userOID.Hex()
}

func validCreateRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Items: []models.CreateOrderItem{
			{ProductID: primitive.NewObjectID().Hex(), Name: "Denim Jacket", Price: 300, Quantity: 1},
		},
		Total:           444,
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	}
}

func TestCreateDirect(t *testing.T) {
	svc, _, publisher, userID := newOrderFixture()

	order, err := svc.CreateDirect(context.Background(), userID, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, 444.0, order.Total)

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].payload.(models.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "shopper@example.com", event.Email)
}

func TestCreateDirectRejectsEmptyItems(t *testing.T) {
	svc, _, _, userID := newOrderFixture()

	req := validCreateRequest()
	req.Items = nil
	_, err := svc.CreateDirect(context.Background(), userID, req)
	require.Error(t, err)
}

func TestCreateDirectRejectsNonPositiveTotal(t *testing.T) {
	svc, _, _, userID := newOrderFixture()

	req := validCreateRequest()
	req.Total = 0
	_, err := svc.CreateDirect(context.Background(), userID, req)
	require.Error(t, err)
}

func TestGetScopedToOwner(t *testing.T) {
	svc, _, _, userID := newOrderFixture()
	ctx := context.Background()

	order, err := svc.CreateDirect(ctx, userID, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex(), order.ID.Hex())
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, _, userID := newOrderFixture()
	ctx := context.Background()

	order, err := svc.CreateDirect(ctx, userID, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, userID, order.ID.Hex(), models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, models.OrderStatusCancelled, store.orders[order.ID].Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, userID := newOrderFixture()
	ctx := context.Background()

	order, err := svc.CreateDirect(ctx, userID, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, userID, order.ID.Hex(), "shipped-to-mars")
	require.Error(t, err)
}

func TestDeleteOrder(t *testing.T) {
	svc, store, _, userID := newOrderFixture()
	ctx := context.Background()

	order, err := svc.CreateDirect(ctx, userID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, order.ID.Hex()))
	assert.Empty(t, store.orders)
}
