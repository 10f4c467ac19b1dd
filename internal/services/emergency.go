package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// EmergencyService manages a user's emergency contact records.
type EmergencyService struct {
	Contacts ports.ContactRepository
}

func NewEmergencyService(contacts ports.ContactRepository) *EmergencyService {
	return &EmergencyService{Contacts: contacts}
}

type ContactInput struct {
	UserID             string
	FullName           string
	Phone              string
	BloodGroup         string
	MedicalHistory     string
	AdditionalComments string
	PreferredHospital  string
	PreferredAmbulance string
}

func (in ContactInput) validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Invalid("userId is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return domain.Invalid("fullName is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return domain.Invalid("phone is required")
	}
	return nil
}

func (s *EmergencyService) Create(ctx context.Context, in ContactInput) (*domain.EmergencyContact, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	contact := &domain.EmergencyContact{
		ID:                 uuid.New().String(),
		UserID:             in.UserID,
		FullName:           in.FullName,
		Phone:              in.Phone,
		BloodGroup:         in.BloodGroup,
		MedicalHistory:     in.MedicalHistory,
		AdditionalComments: in.AdditionalComments,
		PreferredHospital:  in.PreferredHospital,
		PreferredAmbulance: in.PreferredAmbulance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.Contacts.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("create emergency contact: %w", err)
	}

	return contact, nil
}

func (s *EmergencyService) ListByUser(ctx context.Context, userID string) ([]*domain.EmergencyContact, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.Invalid("userId is required")
	}

	contacts, err := s.Contacts.ListContactsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}

	return contacts, nil
}

// ContactPatch carries updatable contact fields; nil means unchanged.
type ContactPatch struct {
	FullName           *string
	Phone              *string
	BloodGroup         *string
	MedicalHistory     *string
	AdditionalComments *string
	PreferredHospital  *string
	PreferredAmbulance *string
}

func (s *EmergencyService) Update(ctx context.Context, id string, patch ContactPatch) (*domain.EmergencyContact, error) {
	contact, err := s.Contacts.GetContact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update emergency contact: %w", err)
	}

	if patch.FullName != nil {
		if strings.TrimSpace(*patch.FullName) == "" {
			return nil, domain.Invalid("fullName cannot be empty")
		}
		contact.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		if strings.TrimSpace(*patch.Phone) == "" {
			return nil, domain.Invalid("phone cannot be empty")
		}
		contact.Phone = *patch.Phone
	}
	if patch.BloodGroup != nil {
		contact.BloodGroup = *patch.BloodGroup
	}
	if patch.MedicalHistory != nil {
		contact.MedicalHistory = *patch.MedicalHistory
	}
	if patch.AdditionalComments != nil {
		contact.AdditionalComments = *patch.AdditionalComments
	}
	if patch.PreferredHospital != nil {
		contact.PreferredHospital = *patch.PreferredHospital
	}
	if patch.PreferredAmbulance != nil {
		contact.PreferredAmbulance = *patch.PreferredAmbulance
	}

	contact.UpdatedAt = time.Now()
	if err := s.Contacts.UpdateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("update emergency contact: %w", err)
	}

	return contact, nil
}

func (s *EmergencyService) Delete(ctx context.Context, id string) error {
	if err := s.Contacts.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}
	return nil
}
