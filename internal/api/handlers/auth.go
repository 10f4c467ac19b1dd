package handlers

import (
	"errors"
	"net/http"

	"healthnav-service/internal/api/dto"
	"healthnav-service/internal/domain"
	"healthnav-service/internal/services"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.Auth.Register(r.Context(), services.RegisterRequest{
		Name:     req.Name,
		CNIC:     req.CNIC,
		Contact:  req.Contact,
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, domain.ErrConflict) {
		writeError(w, r, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, user, err := h.Auth.Login(r.Context(), req.CNIC, req.Password)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: dto.LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}
	writeJSON(w, r, http.StatusOK, res)
}
