// api/store/analytics_store.go
package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"launchkit/api/metrics"
	"launchkit/api/models"
	"launchkit/api/utils"
)

// AnalyticsStore owns the analytics event log: it builds event records, appends
// them to the key-value store, and derives metrics, variants, recommendations
// and exports from the accumulated log. One instance is shared by all handlers;
// its session ID is fixed for the process lifetime.
type AnalyticsStore struct {
	kv        KV
	sessionID string
	mu        sync.Mutex // serializes appends to the event slot
}

func NewAnalyticsStore(kv KV) *AnalyticsStore {
	return &AnalyticsStore{
		kv:        kv,
		sessionID: utils.GenerateSessionID(),
	}
}

// SessionID returns the process-lifetime session token.
func (s *AnalyticsStore) SessionID() string {
	return s.sessionID
}

// TrackEvent builds an event record, persists it synchronously and returns the
// stored record. Tracking never fails from the caller's point of view: a
// persistence error is logged and the best-effort record is returned anyway.
func (s *AnalyticsStore) TrackEvent(ctx context.Context, eventName string, properties map[string]any, client models.ClientContext) models.AnalyticsEvent {
	if properties == nil {
		properties = map[string]any{}
	}

	event := models.AnalyticsEvent{
		EventID:    utils.NextEventID(),
		SessionID:  s.sessionID,
		EventName:  eventName,
		Properties: properties,
		Timestamp:  time.Now().UTC(),
		PageURL:    client.PageURL,
		UserAgent:  client.UserAgent,
		Referrer:   client.Referrer,
	}

	if err := appendRecord(ctx, s.kv, &s.mu, slotAnalyticsEvents, event); err != nil {
		metrics.StoreWriteFailures.Inc()
		log.Printf("Error persisting analytics event %s (%s): %v", event.EventID, eventName, err)
	}
	metrics.EventsTracked.WithLabelValues(eventName).Inc()

	return event
}

// TrackConversion records a conversion event. Caller metadata wins over the
// base fields on key collision.
func (s *AnalyticsStore) TrackConversion(ctx context.Context, conversionType string, value float64, metadata map[string]any, client models.ClientContext) models.AnalyticsEvent {
	properties := map[string]any{
		"conversionType": conversionType,
		"value":          value,
	}
	for k, v := range metadata {
		properties[k] = v
	}
	return s.TrackEvent(ctx, models.EventConversion, properties, client)
}

// TrackAffiliateClick records an affiliate link click in the analytics log.
func (s *AnalyticsStore) TrackAffiliateClick(ctx context.Context, linkID, tool, commission string, client models.ClientContext) models.AnalyticsEvent {
	return s.TrackEvent(ctx, models.EventAffiliateClick, map[string]any{
		"linkId":     linkID,
		"tool":       tool,
		"commission": commission,
		"category":   "affiliate_marketing",
	}, client)
}

// TrackEmailSignup records an email signup. Only the derived one-way token is
// stored; the raw address never reaches the log.
func (s *AnalyticsStore) TrackEmailSignup(ctx context.Context, email, source string, client models.ClientContext) models.AnalyticsEvent {
	if source == "" {
		source = "landing_page"
	}
	return s.TrackEvent(ctx, models.EventEmailSignup, map[string]any{
		"email":    utils.HashEmail(email),
		"source":   source,
		"category": "lead_generation",
	}, client)
}

// GetPerformanceMetrics reads the full event log and partitions it into the
// 24-hour and 7-day rolling windows, measured from now at call time. Window
// boundaries are half-open: an event counts when timestamp > now - window.
func (s *AnalyticsStore) GetPerformanceMetrics(ctx context.Context) models.PerformanceMetrics {
	events := readSlice[models.AnalyticsEvent](ctx, s.kv, slotAnalyticsEvents)
	now := time.Now()

	return models.PerformanceMetrics{
		TotalEvents:       len(events),
		Last24Hours:       countWindow(events, now.Add(-24*time.Hour)),
		Last7Days:         countWindow(events, now.Add(-7*24*time.Hour)),
		ConversionRate:    conversionRate(events),
		TopAffiliateTools: topAffiliateTools(events),
	}
}

// GetVariant deterministically buckets the current session into one of the
// given variants (default A/B) for the named experiment. Every call also
// records an ab_test_variant exposure event, not just the first; callers that
// need once-per-session exposure must de-duplicate themselves.
func (s *AnalyticsStore) GetVariant(ctx context.Context, testName string, variants []string, client models.ClientContext) string {
	if len(variants) == 0 {
		variants = []string{"A", "B"}
	}

	index := utils.BucketHash(s.sessionID+testName) % uint32(len(variants))
	variant := variants[index]

	s.TrackEvent(ctx, models.EventABTestVariant, map[string]any{
		"testName": testName,
		"variant":  variant,
		"userId":   utils.HashEmail(s.sessionID),
	}, client)

	return variant
}

// TrackABTestConversion records a conversion correlated with an experiment
// variant. No linkage against a prior exposure is validated.
func (s *AnalyticsStore) TrackABTestConversion(ctx context.Context, testName, variant, conversionType string, client models.ClientContext) models.AnalyticsEvent {
	return s.TrackEvent(ctx, models.EventABTestConversion, map[string]any{
		"testName":       testName,
		"variant":        variant,
		"conversionType": conversionType,
	}, client)
}

// ExportAnalyticsData assembles the full current state without mutating it.
func (s *AnalyticsStore) ExportAnalyticsData(ctx context.Context) models.AnalyticsExport {
	events := readSlice[models.AnalyticsEvent](ctx, s.kv, slotAnalyticsEvents)
	if events == nil {
		events = []models.AnalyticsEvent{}
	}

	return models.AnalyticsExport{
		Events:          events,
		Metrics:         s.GetPerformanceMetrics(ctx),
		Recommendations: s.GenerateOptimizationRecommendations(ctx),
		ExportedAt:      time.Now().UTC(),
	}
}

// ClearEvents empties the analytics event log. This is the only way records
// leave the store; nothing else deletes or edits them.
func (s *AnalyticsStore) ClearEvents(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, slotAnalyticsEvents, "[]")
}

func countWindow(events []models.AnalyticsEvent, cutoff time.Time) models.WindowCounts {
	var counts models.WindowCounts
	for _, event := range events {
		if !event.Timestamp.After(cutoff) {
			continue
		}
		counts.TotalEvents++
		switch event.EventName {
		case models.EventEmailSignup:
			counts.EmailSignups++
		case models.EventAffiliateClick:
			counts.AffiliateClicks++
		case models.EventConversion:
			counts.Conversions++
		}
	}
	return counts
}

// conversionRate is email signups over page views across the entire history,
// as a percentage with two decimals. The denominator defaults to 1 when no
// page views exist yet, so a fresh log reports "0.00" instead of dividing by
// zero.
func conversionRate(events []models.AnalyticsEvent) string {
	pageViews := 0
	signups := 0
	for _, event := range events {
		switch event.EventName {
		case models.EventPageView:
			pageViews++
		case models.EventEmailSignup:
			signups++
		}
	}
	if pageViews == 0 {
		pageViews = 1
	}
	return fmt.Sprintf("%.2f", float64(signups)/float64(pageViews)*100)
}

// topAffiliateTools groups affiliate_click events by their tool property and
// returns the five most-clicked tools, descending. Equal counts keep the order
// the tools first appeared in the log.
func topAffiliateTools(events []models.AnalyticsEvent) []models.ToolClicks {
	type toolCount struct {
		tool      string
		clicks    int
		firstSeen int
	}

	counts := make(map[string]*toolCount)
	var order []*toolCount
	for _, event := range events {
		if event.EventName != models.EventAffiliateClick {
			continue
		}
		tool, ok := event.Properties["tool"].(string)
		if !ok || tool == "" {
			continue
		}
		entry, seen := counts[tool]
		if !seen {
			entry = &toolCount{tool: tool, firstSeen: len(order)}
			counts[tool] = entry
			order = append(order, entry)
		}
		entry.clicks++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].clicks != order[j].clicks {
			return order[i].clicks > order[j].clicks
		}
		return order[i].firstSeen < order[j].firstSeen
	})

	top := make([]models.ToolClicks, 0, 5)
	for _, entry := range order {
		if len(top) == 5 {
			break
		}
		top = append(top, models.ToolClicks{Tool: entry.tool, Clicks: entry.clicks})
	}
	return top
}
