package staff

import (
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SetSurchargeRequest writes one (article, customer) surcharge row.
type SetSurchargeRequest struct {
	ArticleID  uint         `json:"article_id" binding:"required"`
	CustomerID uint         `json:"customer_id" binding:"required"`
	Amount     models.Money `json:"amount"`
}

// SetSurcharge writes one surcharge row.
func (h *Handler) SetSurcharge(c *gin.Context) {
	var req SetSurchargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid surcharge payload", err)
		return
	}

	if err := h.SurchargeService.SetSurcharge(req.ArticleID, req.CustomerID, req.Amount); err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "set surcharge failed")
		return
	}
	response.SuccessWithMsg(c, "surcharge saved", nil)
}

// DeleteSurcharge removes one surcharge row.
func (h *Handler) DeleteSurcharge(c *gin.Context) {
	articleID, ok := paramUint(c, "article_id")
	if !ok {
		return
	}
	customerID, ok := paramUint(c, "customer_id")
	if !ok {
		return
	}

	if err := h.SurchargeService.DeleteSurcharge(articleID, customerID); err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "delete surcharge failed")
		return
	}
	response.SuccessWithMsg(c, "surcharge deleted", nil)
}

// ListCustomerSurcharges lists the surcharge rows of one customer.
func (h *Handler) ListCustomerSurcharges(c *gin.Context) {
	customerID, ok := paramUint(c, "customer_id")
	if !ok {
		return
	}

	surcharges, err := h.SurchargeService.ListByCustomer(customerID)
	if err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "list surcharges failed")
		return
	}
	response.Success(c, surcharges)
}

// EffectivePrice resolves the price a customer pays for an article,
// base price plus surcharge when a row exists.
func (h *Handler) EffectivePrice(c *gin.Context) {
	articleID, ok := queryUint(c, "article_id")
	if !ok {
		return
	}
	customerID, ok := queryUint(c, "customer_id")
	if !ok {
		return
	}

	article, err := h.ArticleRepo.GetByID(articleID)
	if err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "resolve price failed")
		return
	}
	if article == nil {
		respondError(c, response.CodeNotFound, "article not found", nil)
		return
	}

	price, err := h.SurchargeService.ResolveEffectivePrice(article, customerID)
	if err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "resolve price failed")
		return
	}
	response.Success(c, gin.H{
		"article_id":      articleID,
		"customer_id":     customerID,
		"effective_price": price,
	})
}

// MassSurchargeRequest applies one amount for an article across all
// customers matching the criteria.
type MassSurchargeRequest struct {
	ArticleID uint         `json:"article_id" binding:"required"`
	Category  string       `json:"category"`
	Region    string       `json:"region"`
	Amount    models.Money `json:"amount"`
}

// MassSurcharge materializes a surcharge rule.
func (h *Handler) MassSurcharge(c *gin.Context) {
	var req MassSurchargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid surcharge payload", err)
		return
	}

	count, err := h.SurchargeService.ApplyMassSurcharge(service.MassSurchargeInput{
		ArticleID: req.ArticleID,
		Criteria: repository.CustomerCriteria{
			Category: req.Category,
			Region:   req.Region,
		},
		Amount: req.Amount,
	})
	if err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "mass surcharge failed")
		return
	}
	response.Success(c, gin.H{"customers_affected": count})
}

// BulkEditSurchargesRequest adjusts existing rows of one customer over
// an article selection.
type BulkEditSurchargesRequest struct {
	CustomerID      uint         `json:"customer_id" binding:"required"`
	ArticleIDs      []uint       `json:"article_ids"`
	Category        string       `json:"category"`
	NumberRangeFrom string       `json:"number_range_from"`
	NumberRangeTo   string       `json:"number_range_to"`
	Mode            string       `json:"mode" binding:"required"`
	Amount          models.Money `json:"amount"`
}

// BulkEditSurcharges adjusts existing surcharge rows in bulk.
func (h *Handler) BulkEditSurcharges(c *gin.Context) {
	var req BulkEditSurchargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid surcharge payload", err)
		return
	}

	count, err := h.SurchargeService.BulkEditByCustomer(service.BulkEditInput{
		CustomerID: req.CustomerID,
		Selection: repository.ArticleSelection{
			ArticleIDs:      req.ArticleIDs,
			Category:        req.Category,
			NumberRangeFrom: req.NumberRangeFrom,
			NumberRangeTo:   req.NumberRangeTo,
		},
		Mode:   req.Mode,
		Amount: req.Amount,
	})
	if err != nil {
		respondWithMappedError(c, err, surchargeErrorRules, response.CodeInternal, "bulk edit failed")
		return
	}
	response.Success(c, gin.H{"rows_changed": count})
}
