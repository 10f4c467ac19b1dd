package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	CNIC     string `json:"cnic"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	CNIC     string `json:"cnic"`
	Password string `json:"password"`
}

type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}
