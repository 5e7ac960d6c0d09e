package staff

import (
	"strconv"

	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// getActor builds the service actor from the auth middleware context.
func getActor(c *gin.Context) (service.Actor, bool) {
	staffID, ok := handlershared.GetContextUint(c, "staff_id")
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		StaffID:  staffID,
		Username: handlershared.GetContextString(c, "staff_username"),
		Role:     handlershared.GetContextString(c, "staff_role"),
	}, true
}

// paramUint parses a numeric path parameter.
func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// queryUint parses a numeric query parameter.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

func requestID(c *gin.Context) string {
	return handlershared.GetContextString(c, "request_id")
}
