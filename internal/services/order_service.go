package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

// OrderStore is the order persistence the service needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderService handles direct order creation and order history.
type OrderService struct {
	orders     OrderStore
	users      UserLookup
	publisher  EventPublisher
	orderTopic string
	log        *zap.Logger
}

func NewOrderService(orders OrderStore, users UserLookup, publisher EventPublisher, orderTopic string, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:     orders,
		users:      users,
		publisher:  publisher,
		orderTopic: orderTopic,
		log:        log,
	}
}

// CreateDirect records an order from a client-supplied payload, where the
// client computed its own totals.
func (s *OrderService) CreateDirect(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.BadRequest("Order must contain at least one item")
	}
	if req.Total <= 0 {
		return nil, apperrors.BadRequest("Order total must be positive")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, apperrors.BadRequest("Quantity must be at least 1")
		}
		pid, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, apperrors.BadRequest("Invalid product id")
		}
		items = append(items, models.OrderItem{
			Product:  pid,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Size:     line.Size,
			Image:    line.Image,
		})
	}

	order := &models.Order{
		User:            uid,
		Items:           items,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusProcessing,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Internal("Failed to create order", err)
	}

	s.publishCreated(ctx, order, userID)

	s.log.Info("order created",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID.Hex()),
		zap.Float64("total", order.Total))
	return order, nil
}

// List returns the user's order history, newest first.
func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	orders, err := s.orders.FindByUser(ctx, uid)
	if err != nil {
		return nil, apperrors.Internal("Failed to load orders", err)
	}
	return orders, nil
}

// Get returns one order, scoped to its owner.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid order id")
	}
	order, err := s.orders.FindForUser(ctx, oid, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}
	return order, nil
}

var validStatuses = map[string]bool{
	models.OrderStatusProcessing: true,
	models.OrderStatusCompleted:  true,
	models.OrderStatusCancelled:  true,
}

// UpdateStatus moves an order to a new status, scoped to its owner.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID, status string) (*models.Order, error) {
	if !validStatuses[status] {
		return nil, apperrors.BadRequest("Invalid order status")
	}

	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, apperrors.Internal("Failed to update order", err)
	}
	order.Status = status
	return order, nil
}

// Delete removes an order, scoped to its owner.
func (s *OrderService) Delete(ctx context.Context, userID, orderID string) error {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, order.ID); err != nil {
		return apperrors.Internal("Failed to delete order", err)
	}
	return nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order, userID string) {
	email := ""
	if user, err := s.users.FindByID(ctx, order.User); err == nil {
		email = user.Email
	}

	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}

	event := models.OrderCreatedEvent{
		Event:     models.TypeOrderCreated,
		OrderID:   order.ID.Hex(),
		UserID:    userID,
		Email:     email,
		Total:     order.Total,
		ItemCount: count,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.orderTopic, userID, event); err != nil {
		s.log.Warn("failed to publish order event",
			zap.String("order_id", order.ID.Hex()), zap.Error(err))
	}
}
