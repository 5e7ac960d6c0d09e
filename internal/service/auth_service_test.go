package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fleischwerk-next/internal/config"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"
)

func setupAuth(t *testing.T) (*AuthService, *repository.GormStaffRepository, *repository.GormCustomerRepository) {
	t.Helper()
	env := setupEnv(t)
	staffRepo := repository.NewStaffRepository(env.db)
	cfg := &config.Config{
		JWT:         config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		CustomerJWT: config.JWTConfig{SecretKey: "customer-secret", ExpireHours: 1},
	}
	return NewAuthService(cfg, staffRepo, env.customerRepo), staffRepo, env.customerRepo
}

func TestLoginStaff(t *testing.T) {
	svc, staffRepo, _ := setupAuth(t)

	hash, err := svc.HashPassword("geheim123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	staff := &models.Staff{Username: "maria", PasswordHash: hash, Role: "kommissionierung"}
	if err := staffRepo.Create(staff); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	result, err := svc.LoginStaff(context.Background(), "maria", "geheim123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}

	claims, err := svc.ParseStaffJWT(result.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.StaffID != staff.ID || claims.Role != "kommissionierung" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := svc.LoginStaff(context.Background(), "maria", "falsch"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.LoginStaff(context.Background(), "nobody", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestLoginCustomerWithoutPortalAccess(t *testing.T) {
	svc, _, customerRepo := setupAuth(t)

	customer := &models.Customer{Name: "Metzgerei Nord", Number: "K-300"}
	if err := customerRepo.Create(customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	// No password hash means no portal login.
	if _, err := svc.LoginCustomer(context.Background(), "K-300", "egal"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestStaffTokenRejectedAcrossSecrets(t *testing.T) {
	svc, staffRepo, _ := setupAuth(t)

	hash, _ := svc.HashPassword("geheim123")
	staff := &models.Staff{Username: "jan", PasswordHash: hash, Role: "kontrolle"}
	if err := staffRepo.Create(staff); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	token, _, err := svc.GenerateStaffJWT(staff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// A staff token must not validate as a customer token.
	if _, err := svc.ParseCustomerJWT(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
