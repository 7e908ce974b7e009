// api/store/affiliate_store.go
package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"launchkit/api/metrics"
	"launchkit/api/models"
)

// Fixed attribution parameters appended to every generated tracking link. These
// are deliberately not parameterized per call.
const (
	affiliateRef = "our_affiliate_id"
	utmSource    = "ai_automation_guide"
	utmMedium    = "email"
	utmCampaign  = "saas_affiliate"
)

// AffiliateStore owns the affiliate click log and the link generation for the
// static tool catalog.
type AffiliateStore struct {
	kv KV
	mu sync.Mutex // serializes appends to the click slot
}

func NewAffiliateStore(kv KV) *AffiliateStore {
	return &AffiliateStore{kv: kv}
}

// GenerateAffiliateLinks builds attribution-tagged links for the given tools,
// keyed by tool name. A duplicate name silently overwrites the earlier entry,
// so the catalog must keep names unique.
func (s *AffiliateStore) GenerateAffiliateLinks(tools []models.AffiliateTool) map[string]models.AffiliateLink {
	links := make(map[string]models.AffiliateLink, len(tools))
	for _, tool := range tools {
		links[tool.Name] = models.AffiliateLink{
			Name:       tool.Name,
			Category:   tool.Category,
			Commission: tool.Commission,
			TrackingLink: fmt.Sprintf("%s?ref=%s&utm_source=%s&utm_medium=%s&utm_campaign=%s",
				tool.BaseURL, affiliateRef, utmSource, utmMedium, utmCampaign),
			Description: tool.Description,
			Features:    tool.Features,
		}
	}
	return links
}

// TrackClick records one affiliate link activation. Timestamp, user agent and
// referrer are computed here; caller metadata with the reserved key names
// (linkId, userId, userAgent, referrer) overrides the computed value, and the
// remaining keys are carried in the record's Metadata map. A storage failure is
// returned as {success:false, error}, never raised.
//
// The returned click ID has millisecond resolution only: two clicks recorded
// within the same millisecond share an ID.
func (s *AffiliateStore) TrackClick(ctx context.Context, linkID, userID string, extra map[string]string, client models.ClientContext) models.ClickResult {
	click := models.AffiliateClick{
		LinkID:    linkID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		UserAgent: client.UserAgent,
		Referrer:  client.Referrer,
	}

	if len(extra) > 0 {
		meta := make(map[string]string, len(extra))
		for k, v := range extra {
			switch k {
			case "linkId":
				click.LinkID = v
			case "userId":
				click.UserID = v
			case "userAgent":
				click.UserAgent = v
			case "referrer":
				click.Referrer = v
			default:
				meta[k] = v
			}
		}
		if len(meta) > 0 {
			click.Metadata = meta
		}
	}

	if err := appendRecord(ctx, s.kv, &s.mu, slotAffiliateClicks, click); err != nil {
		metrics.StoreWriteFailures.Inc()
		log.Printf("Error tracking affiliate click for link %s: %v", click.LinkID, err)
		return models.ClickResult{Success: false, Error: err.Error()}
	}

	metrics.AffiliateClicksTracked.Inc()
	return models.ClickResult{
		Success: true,
		ClickID: strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
}

// GetPerformanceAnalytics derives the affiliate-side view: click and conversion
// totals, the click-to-conversion rate, the top five links and the ten most
// recent clicks (newest first).
func (s *AffiliateStore) GetPerformanceAnalytics(ctx context.Context) models.AffiliatePerformance {
	clicks := readSlice[models.AffiliateClick](ctx, s.kv, slotAffiliateClicks)
	conversions := readSlice[models.AffiliateConversion](ctx, s.kv, slotAffiliateConversions)

	rate := "0.00"
	if len(clicks) > 0 {
		rate = fmt.Sprintf("%.2f", float64(len(conversions))/float64(len(clicks))*100)
	}

	return models.AffiliatePerformance{
		TotalClicks:        len(clicks),
		TotalConversions:   len(conversions),
		ConversionRate:     rate,
		TopPerformingLinks: TopPerformingLinks(clicks),
		RecentActivity:     recentClicks(clicks, 10),
	}
}

// TopPerformingLinks groups clicks by link ID and returns the five most-clicked
// links, descending. Equal counts keep the order the links first appeared in
// the log.
func TopPerformingLinks(clicks []models.AffiliateClick) []models.LinkClicks {
	type linkCount struct {
		linkID    string
		clicks    int
		firstSeen int
	}

	counts := make(map[string]*linkCount)
	var order []*linkCount
	for _, click := range clicks {
		entry, seen := counts[click.LinkID]
		if !seen {
			entry = &linkCount{linkID: click.LinkID, firstSeen: len(order)}
			counts[click.LinkID] = entry
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

	top := make([]models.LinkClicks, 0, 5)
	for _, entry := range order {
		if len(top) == 5 {
			break
		}
		top = append(top, models.LinkClicks{LinkID: entry.linkID, Clicks: entry.clicks})
	}
	return top
}

func recentClicks(clicks []models.AffiliateClick, limit int) []models.AffiliateClick {
	recent := make([]models.AffiliateClick, 0, limit)
	for i := len(clicks) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, clicks[i])
	}
	return recent
}
