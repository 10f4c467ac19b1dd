package dto

import (
	"time"

	"healthnav-service/internal/domain"
)

type CreateContactRequest struct {
	UserID             string `json:"userId"`
	FullName           string `json:"fullName"`
	Phone              string `json:"phone"`
	BloodGroup         string `json:"bloodGroup"`
	MedicalHistory     string `json:"medicalHistory"`
	AdditionalComments string `json:"additionalComments"`
	PreferredHospital  string `json:"preferredHospital"`
	PreferredAmbulance string `json:"preferredAmbulance"`
}

type UpdateContactRequest struct {
	FullName           *string `json:"fullName"`
	Phone              *string `json:"phone"`
	BloodGroup         *string `json:"bloodGroup"`
	MedicalHistory     *string `json:"medicalHistory"`
	AdditionalComments *string `json:"additionalComments"`
	PreferredHospital  *string `json:"preferredHospital"`
	PreferredAmbulance *string `json:"preferredAmbulance"`
}

type ContactResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	FullName           string    `json:"fullName"`
	Phone              string    `json:"phone"`
	BloodGroup         string    `json:"bloodGroup,omitempty"`
	MedicalHistory     string    `json:"medicalHistory,omitempty"`
	AdditionalComments string    `json:"additionalComments,omitempty"`
	PreferredHospital  string    `json:"preferredHospital,omitempty"`
	PreferredAmbulance string    `json:"preferredAmbulance,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewContactResponse(c *domain.EmergencyContact) ContactResponse {
	return ContactResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		FullName:           c.FullName,
		Phone:              c.Phone,
		BloodGroup:         c.BloodGroup,
		MedicalHistory:     c.MedicalHistory,
		AdditionalComments: c.AdditionalComments,
		PreferredHospital:  c.PreferredHospital,
		PreferredAmbulance: c.PreferredAmbulance,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
