package services

import (
	"context"
	"fmt"
	"strings"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// ProfileService exposes user profile reads and partial updates.
type ProfileService struct {
	Users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{Users: users}
}

func (s *ProfileService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// ProfilePatch carries the updatable profile fields; nil means unchanged.
type ProfilePatch struct {
	Name      *string
	Contact   *string
	Email     *string
	IsPremium *bool
}

// Update applies the patch to the stored user and returns the result.
func (s *ProfileService) Update(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.Users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, domain.Invalid("name cannot be empty")
		}
		user.Name = *patch.Name
	}
	if patch.Contact != nil {
		user.Contact = *patch.Contact
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, domain.Invalid("email cannot be empty")
		}
		user.Email = *patch.Email
	}
	if patch.IsPremium != nil {
		user.IsPremium = *patch.IsPremium
	}

	if err := s.Users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}
