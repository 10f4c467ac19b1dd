package handlers

import (
	"net/http"

	"healthnav-service/internal/api/dto"
	"healthnav-service/internal/services"
)

// UserHandler exposes user listing and the cart/pharmacy sub-document
// endpoints.
type UserHandler struct {
	Users *services.UserService
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Name, req.CNIC, req.Email, req.IsPremium)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewUserResponse(user))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListUsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		res.Users = append(res.Users, dto.NewUserResponse(u))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *UserHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cart, err := h.Users.AddToCart(r.Context(), req.UserID, req.Medicine)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, cart)
}

func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Users.GetCart(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, cart)
}

func (h *UserHandler) SetPharmacy(w http.ResponseWriter, r *http.Request) {
	var req dto.SetPharmacyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pharmacy, err := h.Users.SetPharmacy(r.Context(), req.UserID, req.Pharmacy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, pharmacy)
}

func (h *UserHandler) GetPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.Users.GetPharmacy(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, pharmacy)
}
