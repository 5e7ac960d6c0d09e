package staff

import (
	"errors"

	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service sentinel onto an envelope code.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var workflowErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPositionNotFound, code: response.CodeNotFound, msg: "order position not found"},
	{target: service.ErrRoleForbidden, code: response.CodeForbidden, msg: "role not permitted"},
	{target: service.ErrAlreadyClaimed, code: response.CodeConflict, msg: "order already claimed"},
	{target: service.ErrIllegalTransition, code: response.CodeConflict, msg: "status transition not allowed"},
	{target: service.ErrNotClaimant, code: response.CodeForbidden, msg: "operation reserved for claimant"},
	{target: service.ErrMissingPickedFields, code: response.CodeUnprocessable, msg: "picked quantity, unit and gross weight required"},
	{target: service.ErrPositionsUnfinished, code: response.CodeUnprocessable, msg: "order has unfinished positions"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPositionNotFound, code: response.CodeNotFound, msg: "order position not found"},
	{target: service.ErrArticleNotFound, code: response.CodeNotFound, msg: "article not found"},
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, msg: "customer not found"},
	{target: service.ErrRoleForbidden, code: response.CodeForbidden, msg: "role not permitted"},
	{target: service.ErrInvalidPosition, code: response.CodeBadRequest, msg: "invalid position input"},
	{target: service.ErrTooManyPositions, code: response.CodeBadRequest, msg: "too many positions on order"},
	{target: service.ErrOrderNotEditable, code: response.CodeConflict, msg: "order no longer editable"},
	{target: service.ErrDuplicateOrderNumber, code: response.CodeConflict, msg: "order number already exists"},
}

var surchargeErrorRules = []mappedHandlerError{
	{target: service.ErrArticleNotFound, code: response.CodeNotFound, msg: "article not found"},
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, msg: "customer not found"},
	{target: service.ErrEmptySelection, code: response.CodeUnprocessable, msg: "selection matches nothing"},
	{target: service.ErrInvalidSurcharge, code: response.CodeBadRequest, msg: "invalid surcharge input"},
}
