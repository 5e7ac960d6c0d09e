package service

import (
	"context"
	"time"

	"github.com/fleischwerk-next/internal/cache"
	"github.com/fleischwerk-next/internal/config"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles staff and customer authentication. Staff tokens
// carry a version so a password change invalidates everything issued
// before it.
type AuthService struct {
	cfg          *config.Config
	staffRepo    repository.StaffRepository
	customerRepo repository.CustomerRepository
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, staffRepo repository.StaffRepository, customerRepo repository.CustomerRepository) *AuthService {
	return &AuthService{
		cfg:          cfg,
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
	}
}

// HashPassword hashes with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a password against its hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks the configured password policy.
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// StaffClaims is the staff JWT payload.
type StaffClaims struct {
	StaffID      uint   `json:"staff_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// CustomerClaims is the customer JWT payload.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	Number     string `json:"number"`
	jwt.RegisteredClaims
}

// GenerateStaffJWT issues a staff token.
func (s *AuthService) GenerateStaffJWT(staff *models.Staff) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := StaffClaims{
		StaffID:      staff.ID,
		Username:     staff.Username,
		Role:         staff.Role,
		TokenVersion: staff.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseStaffJWT validates a staff token and returns its claims.
func (s *AuthService) ParseStaffJWT(tokenString string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GenerateCustomerJWT issues a customer token against its own secret.
func (s *AuthService) GenerateCustomerJWT(customer *models.Customer) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.CustomerJWT.ExpireHours) * time.Hour)

	claims := CustomerClaims{
		CustomerID: customer.ID,
		Number:     customer.Number,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseCustomerJWT validates a customer token and returns its claims.
func (s *AuthService) ParseCustomerJWT(tokenString string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// StaffLoginResult is a successful staff login.
type StaffLoginResult struct {
	Token     string
	ExpiresAt time.Time
	Staff     *models.Staff
}

// LoginStaff verifies credentials and issues a token.
func (s *AuthService) LoginStaff(ctx context.Context, username, password string) (*StaffLoginResult, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(staff.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateStaffJWT(staff)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.staffRepo.UpdateLastLogin(staff.ID, now); err != nil {
		return nil, err
	}
	staff.LastLoginAt = &now
	_ = cache.SetStaffAuthState(ctx, cache.BuildStaffAuthState(staff))

	return &StaffLoginResult{Token: token, ExpiresAt: expiresAt, Staff: staff}, nil
}

// CustomerLoginResult is a successful customer login.
type CustomerLoginResult struct {
	Token     string
	ExpiresAt time.Time
	Customer  *models.Customer
}

// LoginCustomer verifies a customer number and password and issues a
// token. Customers without a password hash have no portal access.
func (s *AuthService) LoginCustomer(ctx context.Context, number, password string) (*CustomerLoginResult, error) {
	customer, err := s.customerRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(customer.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateCustomerJWT(customer)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.customerRepo.UpdateLastLogin(customer.ID, now); err != nil {
		return nil, err
	}
	customer.LastLoginAt = &now
	_ = cache.SetCustomerAuthState(ctx, cache.BuildCustomerAuthState(customer))

	return &CustomerLoginResult{Token: token, ExpiresAt: expiresAt, Customer: customer}, nil
}

// ChangeStaffPassword rotates a staff password and revokes existing
// tokens.
func (s *AuthService) ChangeStaffPassword(ctx context.Context, staffID uint, oldPassword, newPassword string) error {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	if err := s.VerifyPassword(staff.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.staffRepo.UpdatePassword(staffID, hash, time.Now()); err != nil {
		return err
	}
	_ = cache.DelStaffAuthState(ctx, staffID)
	return nil
}
