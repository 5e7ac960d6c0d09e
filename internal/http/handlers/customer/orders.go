package customer

import (
	"errors"
	"strconv"

	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MyOrders lists the caller's own orders.
func (h *Handler) MyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderQueryService.ListForCustomer(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// MyOrder fetches one of the caller's own orders.
func (h *Handler) MyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	raw := c.Param("id")
	orderID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return
	}

	order, err := h.OrderQueryService.GetForCustomer(customerID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "load order failed", err)
		return
	}
	response.Success(c, order)
}
