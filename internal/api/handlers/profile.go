package handlers

import (
	"net/http"

	"healthnav-service/internal/api/dto"
	"healthnav-service/internal/services"
)

// ProfileHandler exposes profile read and partial-update endpoints.
type ProfileHandler struct {
	Profiles *services.ProfileService
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.Profiles.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewUserResponse(user))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.Profiles.Update(r.Context(), id, services.ProfilePatch{
		Name:      req.Name,
		Contact:   req.Contact,
		Email:     req.Email,
		IsPremium: req.IsPremium,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewUserResponse(user))
}
