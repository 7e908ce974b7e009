// api/handlers/track_handlers.go
package handlers

import (
	"net/http"

	"launchkit/api/models"
	"launchkit/api/store"
	"launchkit/api/utils"

	"github.com/gin-gonic/gin"
)

type TrackHandlers struct {
	Analytics *store.AnalyticsStore
}

func NewTrackHandlers(s *store.AnalyticsStore) *TrackHandlers {
	return &TrackHandlers{Analytics: s}
}

// clientContext stamps the page-side request fields onto the record: the page
// URL comes from the request body, user agent and referrer from the headers.
func clientContext(c *gin.Context, pageURL string) models.ClientContext {
	return models.ClientContext{
		PageURL:   pageURL,
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}
}

type trackEventRequest struct {
	EventName  string         `json:"eventName" binding:"required"`
	Properties map[string]any `json:"properties"`
	PageURL    string         `json:"pageUrl"`
}

// TrackEvent records a generic analytics event. The store never fails a track
// call, so a bound request always answers 200 with the stored record.
func (h *TrackHandlers) TrackEvent(c *gin.Context) {
	var req trackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !utils.IsValidEventName(req.EventName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event name: " + req.EventName})
		return
	}

	event := h.Analytics.TrackEvent(c.Request.Context(), req.EventName, req.Properties, clientContext(c, req.PageURL))
	c.JSON(http.StatusOK, event)
}

type trackConversionRequest struct {
	ConversionType string         `json:"conversionType" binding:"required"`
	Value          float64        `json:"value"`
	Metadata       map[string]any `json:"metadata"`
	PageURL        string         `json:"pageUrl"`
}

func (h *TrackHandlers) TrackConversion(c *gin.Context) {
	var req trackConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event := h.Analytics.TrackConversion(c.Request.Context(), req.ConversionType, req.Value, req.Metadata, clientContext(c, req.PageURL))
	c.JSON(http.StatusOK, event)
}

type trackSignupRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Source  string `json:"source"`
	PageURL string `json:"pageUrl"`
}

// TrackEmailSignup records a signup. The raw address is hashed before it
// reaches the log, so the response record already carries the opaque token.
func (h *TrackHandlers) TrackEmailSignup(c *gin.Context) {
	var req trackSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event := h.Analytics.TrackEmailSignup(c.Request.Context(), req.Email, req.Source, clientContext(c, req.PageURL))
	c.JSON(http.StatusOK, event)
}

type trackAffiliateClickRequest struct {
	LinkID     string `json:"linkId" binding:"required"`
	Tool       string `json:"tool" binding:"required"`
	Commission string `json:"commission"`
	PageURL    string `json:"pageUrl"`
}

func (h *TrackHandlers) TrackAffiliateClick(c *gin.Context) {
	var req trackAffiliateClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event := h.Analytics.TrackAffiliateClick(c.Request.Context(), req.LinkID, req.Tool, req.Commission, clientContext(c, req.PageURL))
	c.JSON(http.StatusOK, event)
}

// GetVariant answers the deterministic experiment bucket for this server
// session. Repeated calls return the same variant but each call records a
// fresh exposure event.
func (h *TrackHandlers) GetVariant(c *gin.Context) {
	testName := c.Query("test")
	if testName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "test query parameter is required"})
		return
	}
	variants := c.QueryArray("variants")

	variant := h.Analytics.GetVariant(c.Request.Context(), testName, variants, clientContext(c, c.Query("pageUrl")))
	c.JSON(http.StatusOK, gin.H{
		"testName": testName,
		"variant":  variant,
	})
}

type abConversionRequest struct {
	TestName       string `json:"testName" binding:"required"`
	Variant        string `json:"variant" binding:"required"`
	ConversionType string `json:"conversionType"`
	PageURL        string `json:"pageUrl"`
}

func (h *TrackHandlers) TrackABTestConversion(c *gin.Context) {
	var req abConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event := h.Analytics.TrackABTestConversion(c.Request.Context(), req.TestName, req.Variant, req.ConversionType, clientContext(c, req.PageURL))
	c.JSON(http.StatusOK, event)
}

func (h *TrackHandlers) GetPerformanceMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Analytics.GetPerformanceMetrics(c.Request.Context()))
}

func (h *TrackHandlers) GetRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Analytics.GenerateOptimizationRecommendations(c.Request.Context()))
}

func (h *TrackHandlers) ExportAnalyticsData(c *gin.Context) {
	c.JSON(http.StatusOK, h.Analytics.ExportAnalyticsData(c.Request.Context()))
}

// ClearEvents empties the event log. Destructive, so it only lives behind the
// authenticated dashboard surface.
func (h *TrackHandlers) ClearEvents(c *gin.Context) {
	if err := h.Analytics.ClearEvents(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear analytics events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analytics events cleared"})
}
