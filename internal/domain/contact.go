package domain

import "time"

// Represents an emergency contact record owned by a user.
type EmergencyContact struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	FullName           string    `json:"full_name"`
	Phone              string    `json:"phone"`
	BloodGroup         string    `json:"blood_group,omitempty"`
	MedicalHistory     string    `json:"medical_history,omitempty"`
	AdditionalComments string    `json:"additional_comments,omitempty"`
	PreferredHospital  string    `json:"preferred_hospital,omitempty"`
	PreferredAmbulance string    `json:"preferred_ambulance,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
