// Package customer exposes the read-only customer portal: login and the
// customer's own orders.
package customer

import (
	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler is the customer API handler.
type Handler struct {
	*provider.Container
}

// New creates the customer handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id")
}
