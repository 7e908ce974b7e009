// api/handlers/track_handlers_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchkit/api/models"
	"launchkit/api/rewardful"
	"launchkit/api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := store.NewMemoryKV()
	trackHandlers := NewTrackHandlers(store.NewAnalyticsStore(kv))
	affiliateHandlers := NewAffiliateHandlers(store.NewAffiliateStore(kv), rewardful.NewClient("test-key").WithLatency(0))

	r := gin.New()
	r.POST("/api/track", trackHandlers.TrackEvent)
	r.POST("/api/track/signup", trackHandlers.TrackEmailSignup)
	r.GET("/api/variant", trackHandlers.GetVariant)
	r.GET("/api/affiliate/links", affiliateHandlers.GetAffiliateLinks)
	r.POST("/api/affiliate/click", affiliateHandlers.TrackClick)
	return r
}

func TestTrackEventEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := `{"eventName":"page_view","properties":{"page":"landing_page"},"pageUrl":"https://example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://google.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var event models.AnalyticsEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "page_view", event.EventName)
	assert.Equal(t, "https://example.com", event.PageURL)
	assert.Equal(t, "test-agent", event.UserAgent)
	assert.Equal(t, "https://google.com", event.Referrer)
}

func TestTrackEventRejectsUnknownName(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(`{"eventName":"made_up"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackSignupEndpointHashesEmail(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/track/signup", strings.NewReader(`{"email":"user@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "user@example.com")
	assert.Contains(t, w.Body.String(), "hash_")
}

func TestVariantEndpointDeterministic(t *testing.T) {
	r := newTestRouter(t)

	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/api/variant?test=headline", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			TestName string `json:"testName"`
			Variant  string `json:"variant"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Variant
	}

	assert.Equal(t, get(), get())
}

func TestVariantEndpointRequiresTestName(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/variant", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAffiliateLinksEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/affiliate/links", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var links map[string]models.AffiliateLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Contains(t, links, "HubSpot")
	assert.True(t, strings.HasPrefix(links["HubSpot"].TrackingLink, "https://www.hubspot.com?ref="))
}

func TestAffiliateClickEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/affiliate/click", strings.NewReader(`{"linkId":"hubspot-1","userId":"v1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.ClickResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.ClickID)
}
