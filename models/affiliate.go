// api/models/affiliate.go
package models

import "time"

// AffiliateTool is one entry of the static tool catalog. Names are the map keys
// for generated links and must stay unique within the catalog.
type AffiliateTool struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Commission  string   `json:"commission"`
	BaseURL     string   `json:"baseUrl"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// AffiliateLink is a catalog tool augmented with the fixed attribution query
// parameters. Links are recomputed on demand and never persisted.
type AffiliateLink struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Commission   string   `json:"commission"`
	TrackingLink string   `json:"trackingLink"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
}

// AffiliateClick is one logged activation of an affiliate link. Timestamp,
// UserAgent and Referrer are computed at tracking time; caller-supplied metadata
// with the same key names overrides them, everything else lands in Metadata.
type AffiliateClick struct {
	LinkID    string            `json:"linkId"`
	UserID    string            `json:"userId"`
	Timestamp time.Time         `json:"timestamp"`
	UserAgent string            `json:"userAgent"`
	Referrer  string            `json:"referrer"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AffiliateConversion is the record shape of the affiliateConversions slot. The
// slot is read by GetPerformanceAnalytics but no in-process operation populates
// it; conversions are reported through the Rewardful client.
type AffiliateConversion struct {
	ConversionID  string    `json:"conversionId"`
	AffiliateCode string    `json:"affiliateCode"`
	Email         string    `json:"email"`
	ConvertedAt   time.Time `json:"convertedAt"`
}

// ClickResult is what TrackClick hands back to the page. Failures are reported
// here instead of being raised, so the page never blocks on storage health.
type ClickResult struct {
	Success bool   `json:"success"`
	ClickID string `json:"clickId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LinkClicks is one entry of the top-performing-links ranking.
type LinkClicks struct {
	LinkID string `json:"linkId"`
	Clicks int    `json:"clicks"`
}

// AffiliatePerformance is the affiliate-side analytics view.
type AffiliatePerformance struct {
	TotalClicks        int              `json:"totalClicks"`
	TotalConversions   int              `json:"totalConversions"`
	ConversionRate     string           `json:"conversionRate"`
	TopPerformingLinks []LinkClicks     `json:"topPerformingLinks"`
	RecentActivity     []AffiliateClick `json:"recentActivity"`
}

// HighCommissionSaaSTools is the static catalog the landing page promotes.
var HighCommissionSaaSTools = []AffiliateTool{
	{
		Name:        "HubSpot",
		Category:    "CRM & Marketing",
		Commission:  "30% recurring for 12 months",
		BaseURL:     "https://www.hubspot.com",
		Description: "All-in-one CRM, marketing, sales, and service platform",
		Features:    []string{"CRM", "Email Marketing", "Sales Automation", "Analytics"},
	},
	{
		Name:        "ActiveCampaign",
		Category:    "Email Marketing",
		Commission:  "30% recurring",
		BaseURL:     "https://www.activecampaign.com",
		Description: "Email marketing and marketing automation platform",
		Features:    []string{"Email Automation", "CRM", "Segmentation", "A/B Testing"},
	},
	{
		Name:        "Semrush",
		Category:    "SEO & Content",
		Commission:  "40% recurring",
		BaseURL:     "https://www.semrush.com",
		Description: "SEO and content marketing platform",
		Features:    []string{"Keyword Research", "Site Audit", "Content Planning", "Competitor Analysis"},
	},
	{
		Name:        "ConvertKit",
		Category:    "Email Marketing",
		Commission:  "30% recurring for 24 months",
		BaseURL:     "https://convertkit.com",
		Description: "Email marketing for creators and businesses",
		Features:    []string{"Email Sequences", "Landing Pages", "Forms", "Automation"},
	},
	{
		Name:        "Shopify",
		Category:    "E-commerce",
		Commission:  "200% of first month payment",
		BaseURL:     "https://www.shopify.com",
		Description: "Complete e-commerce platform",
		Features:    []string{"Online Store", "Payment Processing", "Inventory Management", "Analytics"},
	},
}
