// api/handlers/affiliate_handlers.go
package handlers

import (
	"net/http"

	"launchkit/api/models"
	"launchkit/api/rewardful"
	"launchkit/api/store"

	"github.com/gin-gonic/gin"
)

type AffiliateHandlers struct {
	Affiliates *store.AffiliateStore
	Rewardful  *rewardful.Client
}

func NewAffiliateHandlers(s *store.AffiliateStore, client *rewardful.Client) *AffiliateHandlers {
	return &AffiliateHandlers{Affiliates: s, Rewardful: client}
}

// GetAffiliateLinks returns the attribution-tagged links for the static SaaS
// tool catalog, keyed by tool name.
func (h *AffiliateHandlers) GetAffiliateLinks(c *gin.Context) {
	c.JSON(http.StatusOK, h.Affiliates.GenerateAffiliateLinks(models.HighCommissionSaaSTools))
}

type trackClickRequest struct {
	LinkID   string            `json:"linkId" binding:"required"`
	UserID   string            `json:"userId"`
	Metadata map[string]string `json:"metadata"`
	PageURL  string            `json:"pageUrl"`
}

// TrackClick appends a click record. The result carries success or failure in
// the body; the HTTP status stays 200 either way so the page never blocks on
// storage health.
func (h *AffiliateHandlers) TrackClick(c *gin.Context) {
	var req trackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := h.Affiliates.TrackClick(c.Request.Context(), req.LinkID, req.UserID, req.Metadata, models.ClientContext{
		PageURL:   req.PageURL,
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	c.JSON(http.StatusOK, result)
}

func (h *AffiliateHandlers) GetPerformanceAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Affiliates.GetPerformanceAnalytics(c.Request.Context()))
}

type affiliateConversionRequest struct {
	Email          string         `json:"email" binding:"required,email"`
	AffiliateCode  string         `json:"affiliateCode" binding:"required"`
	ConversionData map[string]any `json:"conversionData"`
}

// TrackConversion forwards a lead conversion to the affiliate program. The
// stub answers with a result value in bounded time; failures come back as
// {success:false, error}.
func (h *AffiliateHandlers) TrackConversion(c *gin.Context) {
	var req affiliateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := h.Rewardful.TrackConversion(c.Request.Context(), req.Email, req.AffiliateCode, req.ConversionData)
	c.JSON(http.StatusOK, result)
}

type onboardingRequest struct {
	Email         string         `json:"email" binding:"required,email"`
	AffiliateData map[string]any `json:"affiliateData"`
}

func (h *AffiliateHandlers) CreateOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := h.Rewardful.CreateAffiliateOnboarding(c.Request.Context(), req.Email, req.AffiliateData)
	c.JSON(http.StatusOK, result)
}
