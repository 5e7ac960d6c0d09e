package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fleischwerk-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// StaffAuthState is a server-side snapshot of the fields the auth
// middleware needs per request. token_invalid_before is a Unix second
// timestamp, 0 when unset.
type StaffAuthState struct {
	StaffID            uint   `json:"staff_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// CustomerAuthState is the customer login snapshot.
type CustomerAuthState struct {
	CustomerID uint   `json:"customer_id"`
	Number     string `json:"number"`
	UpdatedAt  int64  `json:"updated_at"`
}

func staffAuthStateKey(staffID uint) string {
	return fmt.Sprintf("auth:staff:%d", staffID)
}

func customerAuthStateKey(customerID uint) string {
	return fmt.Sprintf("auth:customer:%d", customerID)
}

// BuildStaffAuthState builds the snapshot from a staff row.
func BuildStaffAuthState(staff *models.Staff) *StaffAuthState {
	if staff == nil {
		return nil
	}
	state := &StaffAuthState{
		StaffID:      staff.ID,
		Username:     staff.Username,
		Role:         staff.Role,
		TokenVersion: staff.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if staff.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = staff.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildCustomerAuthState builds the snapshot from a customer row.
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	return &CustomerAuthState{
		CustomerID: customer.ID,
		Number:     customer.Number,
		UpdatedAt:  time.Now().Unix(),
	}
}

// GetStaffAuthState reads the staff snapshot.
func GetStaffAuthState(ctx context.Context, staffID uint) (*StaffAuthState, bool, error) {
	if staffID == 0 {
		return nil, false, nil
	}
	var state StaffAuthState
	hit, err := GetJSON(ctx, staffAuthStateKey(staffID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetStaffAuthState writes the staff snapshot.
func SetStaffAuthState(ctx context.Context, state *StaffAuthState) error {
	if state == nil || state.StaffID == 0 {
		return nil
	}
	return SetJSON(ctx, staffAuthStateKey(state.StaffID), state, authStateCacheTTL)
}

// DelStaffAuthState invalidates the staff snapshot.
func DelStaffAuthState(ctx context.Context, staffID uint) error {
	if staffID == 0 {
		return nil
	}
	return Del(ctx, staffAuthStateKey(staffID))
}

// GetCustomerAuthState reads the customer snapshot.
func GetCustomerAuthState(ctx context.Context, customerID uint) (*CustomerAuthState, bool, error) {
	if customerID == 0 {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState writes the customer snapshot.
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == 0 {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState invalidates the customer snapshot.
func DelCustomerAuthState(ctx context.Context, customerID uint) error {
	if customerID == 0 {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}
