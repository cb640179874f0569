package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

// CartStore is the cart persistence the service needs.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

// ProductCatalog resolves products when items are added to a cart.
type ProductCatalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// OrderCreator persists orders produced by checkout.
type OrderCreator interface {
	Create(ctx context.Context, order *models.Order) error
}

// UserLookup resolves the account behind a cart, for the confirmation email.
type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// CartService owns the server-held carts: one JSON document per user,
// mutated under the API and cleared on checkout.
type CartService struct {
	carts      CartStore
	products   ProductCatalog
	orders     OrderCreator
	users      UserLookup
	publisher  EventPublisher
	orderTopic string
	log        *zap.Logger
}

func NewCartService(carts CartStore, products ProductCatalog, orders OrderCreator, users UserLookup, publisher EventPublisher, orderTopic string, log *zap.Logger) *CartService {
	return &CartService{
		carts:      carts,
		products:   products,
		orders:     orders,
		users:      users,
		publisher:  publisher,
		orderTopic: orderTopic,
		log:        log,
	}
}

// Get returns the user's cart, creating an empty one if none exists.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// Add puts a product in the cart. Adding a product and size already present
// accumulates quantity on the existing line instead of duplicating it.
func (s *CartService) Add(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return nil, apperrors.BadRequest("Quantity must be at least 1")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid product id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}
	if !product.InStock {
		return nil, apperrors.BadRequest("Product is out of stock")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	size := strings.TrimSpace(req.Size)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].Product.ID == product.ID.Hex() && strings.TrimSpace(cart.Items[i].Size) == size {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ID: uuid.NewString(),
			Product: models.ProductRef{
				ID:    product.ID.Hex(),
				Name:  product.Name,
				Price: product.Price,
				Image: product.Image,
			},
			Quantity: req.Quantity,
			Size:     size,
			Price:    product.Price,
		})
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// UpdateItem sets the quantity of one cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, req models.UpdateItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, apperrors.BadRequest("Quantity must be at least 1")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NotFound("Cart item not found")
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// Remove drops one cart line.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, apperrors.NotFound("Cart item not found")
	}
	cart.Items = kept

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// Clear empties the cart entirely.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return apperrors.Internal("Failed to clear cart", err)
	}
	return nil
}

// Checkout turns the cart into an order, publishes the order event and
// clears the cart. The order total is the sum of line price times quantity.
func (s *CartService) Checkout(ctx context.Context, userID string, req models.CheckoutRequest) (*models.Order, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.BadRequest("Cart is empty")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		pid, err := primitive.ObjectIDFromHex(line.Product.ID)
		if err != nil {
			return nil, apperrors.Internal("Corrupt cart item", err)
		}
		items = append(items, models.OrderItem{
			Product:  pid,
			Name:     line.Product.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Size:     line.Size,
			Image:    line.Product.Image,
		})
		total += line.Price * float64(line.Quantity)
	}

	order := &models.Order{
		User:            uid,
		Items:           items,
		Total:           total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusProcessing,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Internal("Failed to create order", err)
	}

	s.publishOrderCreated(ctx, order, userID)

	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.log.Warn("failed to clear cart after checkout",
			zap.String("user_id", userID), zap.Error(err))
	}

	s.log.Info("checkout completed",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID.Hex()),
		zap.Float64("total", order.Total))
	return order, nil
}

func (s *CartService) publishOrderCreated(ctx context.Context, order *models.Order, userID string) {
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
