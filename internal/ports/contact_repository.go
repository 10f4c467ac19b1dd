package ports

import (
	"context"
	"healthnav-service/internal/domain"
)

// Port: a boundary for storing and retrieving EmergencyContact records.
type ContactRepository interface {
	CreateContact(ctx context.Context, c *domain.EmergencyContact) error
	ListContactsByUser(ctx context.Context, userID string) ([]*domain.EmergencyContact, error)
	UpdateContact(ctx context.Context, c *domain.EmergencyContact) error
	DeleteContact(ctx context.Context, id string) error
	GetContact(ctx context.Context, id string) (*domain.EmergencyContact, error)
}
