package services

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

const minPasswordLength = 6

// UserStore is the account persistence the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartWiper drops a user's server cart; used when the account goes away.
type CartWiper interface {
	DeleteCart(ctx context.Context, userID string) error
}

// OrderWiper drops a user's order history; used when the account goes away.
type OrderWiper interface {
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// AuthService handles registration, login and profile management.
type AuthService struct {
	users  UserStore
	carts  CartWiper
	orders OrderWiper
	tokens *TokenService
	log    *zap.Logger
}

func NewAuthService(users UserStore, carts CartWiper, orders OrderWiper, tokens *TokenService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, carts: carts, orders: orders, tokens: tokens, log: log}
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthUser, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.BadRequest("Password must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.New(http.StatusConflict, "Email already registered", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return &models.AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

// Login verifies credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthUser, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, apperrors.Internal("Failed to log in", err)
	}

	return &models.AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

// Profile returns the authenticated user's profile.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.findByHex(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile applies the non-empty fields of req to the account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	user, err := s.findByHex(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			return nil, apperrors.BadRequest("Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal("Failed to update profile", err)
		}
		user.Password = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("Failed to update profile", err)
	}

	return &models.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}, nil
}

// DeleteAccount removes the user along with their cart and order history.
// The caller's password is confirmed first.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.findByHex(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return apperrors.Internal("Failed to delete account", err)
	}
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.log.Warn("failed to delete cart for removed account",
			zap.String("user_id", userID), zap.Error(err))
	}
	if err := s.orders.DeleteByUser(ctx, user.ID); err != nil {
		s.log.Warn("failed to delete orders for removed account",
			zap.String("user_id", userID), zap.Error(err))
	}

	s.log.Info("account deleted", zap.String("user_id", userID))
	return nil
}

func (s *AuthService) findByHex(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return user, nil
}
