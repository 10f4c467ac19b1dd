package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// UserService exposes user listing plus the medicine-cart and pharmacy
// sub-document operations.
type UserService struct {
	Users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AddToCart appends a medicine line to the user's cart and returns the
// updated cart.
func (s *UserService) AddToCart(ctx context.Context, userID string, item domain.Medicine) ([]domain.Medicine, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, domain.Invalid("medicine name is required")
	}
	if item.Quantity <= 0 {
		return nil, domain.Invalid("medicine quantity must be positive")
	}

	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	user.Cart = append(user.Cart, item)
	if err := s.Users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	return user.Cart, nil
}

func (s *UserService) GetCart(ctx context.Context, userID string) ([]domain.Medicine, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if user.Cart == nil {
		return []domain.Medicine{}, nil
	}
	return user.Cart, nil
}

// SetPharmacy replaces the user's preferred pharmacy.
func (s *UserService) SetPharmacy(ctx context.Context, userID string, pharmacy domain.Pharmacy) (*domain.Pharmacy, error) {
	if strings.TrimSpace(pharmacy.Name) == "" {
		return nil, domain.Invalid("pharmacy name is required")
	}

	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("set pharmacy: %w", err)
	}

	p := pharmacy
	user.Pharmacy = &p
	if err := s.Users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("set pharmacy: %w", err)
	}

	return user.Pharmacy, nil
}

// GetPharmacy returns the user's preferred pharmacy, or nil when unset.
func (s *UserService) GetPharmacy(ctx context.Context, userID string) (*domain.Pharmacy, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get pharmacy: %w", err)
	}

	return user.Pharmacy, nil
}

// CreateUser registers a bare user record (admin/demo path; normal signup
// goes through AuthService.Register).
func (s *UserService) CreateUser(ctx context.Context, name, cnic, email string, isPremium bool) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("name is required")
	}
	if strings.TrimSpace(cnic) == "" {
		return nil, domain.Invalid("cnic is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.Invalid("email is required")
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		CNIC:      cnic,
		Email:     email,
		IsPremium: isPremium,
		Cart:      []domain.Medicine{},
	}

	if err := s.Users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}
