package ports

import (
	"context"
	"healthnav-service/internal/domain"
)

// Port: a boundary for storing and retrieving User records.
//
// Lookups return domain.ErrNotFound when no record matches.
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByCNIC(ctx context.Context, cnic string) (*domain.User, error)
	// UpdateUser rewrites the full user record, sub-documents included.
	UpdateUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
