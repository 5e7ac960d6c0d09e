package service

import "errors"

// Sentinel errors of the fulfillment domain. The HTTP layer maps these
// onto envelope codes; services never touch HTTP status directly.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrPositionNotFound   = errors.New("order position not found")
	ErrArticleNotFound    = errors.New("article not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")

	// ErrAlreadyClaimed reports that a claim lost the compare-and-set
	// race or the axis left its claimable state.
	ErrAlreadyClaimed    = errors.New("order already claimed")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotClaimant       = errors.New("operation reserved for claimant")
	ErrRoleForbidden     = errors.New("role not permitted")

	ErrMissingPickedFields  = errors.New("picked quantity and unit required")
	ErrPositionsUnfinished  = errors.New("order has unfinished positions")
	ErrEmptySelection       = errors.New("selection matches nothing")
	ErrInvalidSurcharge     = errors.New("invalid surcharge input")
	ErrInvalidPosition      = errors.New("invalid position input")
	ErrTooManyPositions     = errors.New("too many positions on order")
	ErrOrderNotEditable     = errors.New("order no longer editable")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)
