package dto

import "healthnav-service/internal/domain"

type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CNIC      string            `json:"cnic"`
	Contact   string            `json:"contact,omitempty"`
	Email     string            `json:"email"`
	IsPremium bool              `json:"is_premium"`
	Cart      []domain.Medicine `json:"cart"`
	Pharmacy  *domain.Pharmacy  `json:"pharmacy,omitempty"`
}

func NewUserResponse(u *domain.User) UserResponse {
	cart := u.Cart
	if cart == nil {
		cart = []domain.Medicine{}
	}

	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CNIC:      u.CNIC,
		Contact:   u.Contact,
		Email:     u.Email,
		IsPremium: u.IsPremium,
		Cart:      cart,
		Pharmacy:  u.Pharmacy,
	}
}

type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Contact   *string `json:"contact"`
	Email     *string `json:"email"`
	IsPremium *bool   `json:"is_premium"`
}

type CreateUserRequest struct {
	Name      string `json:"name"`
	CNIC      string `json:"cnic"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

type AddToCartRequest struct {
	UserID   string          `json:"userId"`
	Medicine domain.Medicine `json:"medicine"`
}

type SetPharmacyRequest struct {
	UserID   string          `json:"userId"`
	Pharmacy domain.Pharmacy `json:"pharmacy"`
}
