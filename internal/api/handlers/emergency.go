package handlers

import (
	"net/http"

	"healthnav-service/internal/api/dto"
	"healthnav-service/internal/services"
)

// EmergencyHandler exposes emergency-contact CRUD endpoints.
type EmergencyHandler struct {
	Contacts *services.EmergencyService
}

func (h *EmergencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contact, err := h.Contacts.Create(r.Context(), services.ContactInput{
		UserID:             req.UserID,
		FullName:           req.FullName,
		Phone:              req.Phone,
		BloodGroup:         req.BloodGroup,
		MedicalHistory:     req.MedicalHistory,
		AdditionalComments: req.AdditionalComments,
		PreferredHospital:  req.PreferredHospital,
		PreferredAmbulance: req.PreferredAmbulance,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewContactResponse(contact))
}

func (h *EmergencyHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	contacts, err := h.Contacts.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := make([]dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		res = append(res, dto.NewContactResponse(c))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *EmergencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.UpdateContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contact, err := h.Contacts.Update(r.Context(), id, services.ContactPatch{
		FullName:           req.FullName,
		Phone:              req.Phone,
		BloodGroup:         req.BloodGroup,
		MedicalHistory:     req.MedicalHistory,
		AdditionalComments: req.AdditionalComments,
		PreferredHospital:  req.PreferredHospital,
		PreferredAmbulance: req.PreferredAmbulance,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewContactResponse(contact))
}

func (h *EmergencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Contacts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Contact deleted"})
}
