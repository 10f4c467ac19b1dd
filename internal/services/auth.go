package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// AuthService handles registration and login.
type AuthService struct {
	Users     ports.UserRepository
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret []byte) *AuthService {
	return &AuthService{
		Users:     users,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Hour,
	}
}

type RegisterRequest struct {
	Name     string
	CNIC     string
	Contact  string
	Email    string
	Password string
}

// Register creates a new user. Fails with domain.ErrConflict when the
// email is already registered.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(req.CNIC) == "" {
		return domain.Invalid("cnic is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return domain.Invalid("email is required")
	}
	if req.Password == "" {
		return domain.Invalid("password is required")
	}

	_, err := s.Users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return fmt.Errorf("register: email already registered: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("register: check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		CNIC:     req.CNIC,
		Contact:  req.Contact,
		Email:    req.Email,
		Password: string(hash),
		Cart:     []domain.Medicine{},
	}

	if err := s.Users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a signed token. The cnic not
// being registered surfaces as domain.ErrNotFound; a wrong password as a
// ValidationError ("Invalid credentials").
func (s *AuthService) Login(ctx context.Context, cnic, password string) (string, *domain.User, error) {
	if strings.TrimSpace(cnic) == "" || password == "" {
		return "", nil, domain.Invalid("cnic and password are required")
	}

	user, err := s.Users.GetUserByCNIC(ctx, cnic)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.Invalid("Invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.TokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, user, nil
}
