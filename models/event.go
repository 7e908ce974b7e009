// api/models/event.go
package models

import "time"

// Event names recorded by the tracking layer.
const (
	EventPageView         = "page_view"
	EventEmailSignup      = "email_signup"
	EventAffiliateClick   = "affiliate_click"
	EventConversion       = "conversion"
	EventABTestVariant    = "ab_test_variant"
	EventABTestConversion = "ab_test_conversion"
)

// AnalyticsEvent represents a single tracked event. Records are immutable once
// appended: they are never edited or removed in place.
type AnalyticsEvent struct {
	EventID    string         `json:"id"`
	SessionID  string         `json:"sessionId"`
	EventName  string         `json:"eventName"`
	Properties map[string]any `json:"properties"`
	Timestamp  time.Time      `json:"timestamp"`
	PageURL    string         `json:"pageUrl"`
	UserAgent  string         `json:"userAgent"`
	Referrer   string         `json:"referrer"`
}

// ClientContext carries the page-side request fields stamped onto every record.
// Handlers fill it from the incoming request; tests can leave it zero.
type ClientContext struct {
	PageURL   string `json:"pageUrl"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

// WindowCounts holds the per-window totals of a metrics snapshot.
type WindowCounts struct {
	TotalEvents     int `json:"totalEvents"`
	EmailSignups    int `json:"emailSignups"`
	AffiliateClicks int `json:"affiliateClicks"`
	Conversions     int `json:"conversions"`
}

// ToolClicks is one entry of the top-affiliate-tools ranking.
type ToolClicks struct {
	Tool   string `json:"tool"`
	Clicks int    `json:"clicks"`
}

// PerformanceMetrics is the rolling-window snapshot computed from the event log.
// ConversionRate is a percentage formatted to two decimal places ("0.00").
type PerformanceMetrics struct {
	TotalEvents       int          `json:"totalEvents"`
	Last24Hours       WindowCounts `json:"last24Hours"`
	Last7Days         WindowCounts `json:"last7Days"`
	ConversionRate    string       `json:"conversionRate"`
	TopAffiliateTools []ToolClicks `json:"topAffiliateTools"`
}

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a rule-triggered optimization suggestion. Recommendations are
// ephemeral and recomputed from a metrics snapshot on every call.
type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// AnalyticsExport is the full-state snapshot assembled for external consumption.
type AnalyticsExport struct {
	Events          []AnalyticsEvent   `json:"events"`
	Metrics         PerformanceMetrics `json:"metrics"`
	Recommendations []Recommendation   `json:"recommendations"`
	ExportedAt      time.Time          `json:"exportedAt"`
}
