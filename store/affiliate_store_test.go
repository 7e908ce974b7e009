package store

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"launchkit/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAffiliateLinks(t *testing.T) {
	s := NewAffiliateStore(NewMemoryKV())

	links := s.GenerateAffiliateLinks([]models.AffiliateTool{{
		Name:        "X",
		BaseURL:     "https://x.example",
		Category:    "C",
		Commission:  "10%",
		Description: "d",
		Features:    []string{},
	}})

	require.Contains(t, links, "X")
	link := links["X"]
	assert.True(t, strings.HasPrefix(link.TrackingLink, "https://x.example?ref="))
	assert.Contains(t, link.TrackingLink, "utm_source=ai_automation_guide")
	assert.Contains(t, link.TrackingLink, "utm_medium=email")
	assert.Contains(t, link.TrackingLink, "utm_campaign=saas_affiliate")
	assert.Equal(t, "C", link.Category)
}

func TestGenerateAffiliateLinksCatalog(t *testing.T) {
	s := NewAffiliateStore(NewMemoryKV())

	links := s.GenerateAffiliateLinks(models.HighCommissionSaaSTools)
	assert.Len(t, links, len(models.HighCommissionSaaSTools))
	for _, tool := range models.HighCommissionSaaSTools {
		assert.Contains(t, links, tool.Name)
	}
}

func TestGenerateAffiliateLinksDuplicateNameOverwrites(t *testing.T) {
	s := NewAffiliateStore(NewMemoryKV())

	links := s.GenerateAffiliateLinks([]models.AffiliateTool{
		{Name: "X", BaseURL: "https://first.example"},
		{Name: "X", BaseURL: "https://second.example"},
	})

	require.Len(t, links, 1)
	assert.True(t, strings.HasPrefix(links["X"].TrackingLink, "https://second.example"))
}

func TestTrackClickStoresRecord(t *testing.T) {
	kv := NewMemoryKV()
	s := NewAffiliateStore(kv)
	ctx := context.Background()

	result := s.TrackClick(ctx, "hubspot-1", "visitor-9", nil, models.ClientContext{
		UserAgent: "test-agent",
		Referrer:  "https://google.com",
	})

	require.True(t, result.Success)
	assert.NotEmpty(t, result.ClickID)

	clicks := readSlice[models.AffiliateClick](ctx, kv, slotAffiliateClicks)
	require.Len(t, clicks, 1)
	assert.Equal(t, "hubspot-1", clicks[0].LinkID)
	assert.Equal(t, "visitor-9", clicks[0].UserID)
	assert.Equal(t, "test-agent", clicks[0].UserAgent)
	assert.WithinDuration(t, time.Now(), clicks[0].Timestamp, 2*time.Second)
}

func TestTrackClickMetadataPrecedence(t *testing.T) {
	kv := NewMemoryKV()
	s := NewAffiliateStore(kv)
	ctx := context.Background()

	result := s.TrackClick(ctx, "link-1", "u1", map[string]string{
		"referrer": "https://newsletter.example", // overrides computed referrer
		"campaign": "spring_launch",              // carried as extra metadata
	}, models.ClientContext{Referrer: "https://google.com"})
	require.True(t, result.Success)

	clicks := readSlice[models.AffiliateClick](ctx, kv, slotAffiliateClicks)
	require.Len(t, clicks, 1)
	assert.Equal(t, "https://newsletter.example", clicks[0].Referrer)
	assert.Equal(t, map[string]string{"campaign": "spring_launch"}, clicks[0].Metadata)
}

func TestTrackClickStoreFailure(t *testing.T) {
	s := NewAffiliateStore(failingKV{})

	result := s.TrackClick(context.Background(), "link-1", "u1", nil, models.ClientContext{})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.ClickID)
}

func TestTopPerformingLinks(t *testing.T) {
	var clicks []models.AffiliateClick
	addClicks := func(linkID string, n int) {
		for i := 0; i < n; i++ {
			clicks = append(clicks, models.AffiliateClick{LinkID: linkID})
		}
	}
	addClicks("a", 2)
	addClicks("b", 7)
	addClicks("c", 7)
	addClicks("d", 1)
	addClicks("e", 3)
	addClicks("f", 4)

	top := TopPerformingLinks(clicks)
	require.Len(t, top, 5)
	// b and c tie at 7; b was seen first.
	assert.Equal(t, models.LinkClicks{LinkID: "b", Clicks: 7}, top[0])
	assert.Equal(t, models.LinkClicks{LinkID: "c", Clicks: 7}, top[1])
	assert.Equal(t, models.LinkClicks{LinkID: "f", Clicks: 4}, top[2])
	assert.Equal(t, models.LinkClicks{LinkID: "e", Clicks: 3}, top[3])
	assert.Equal(t, models.LinkClicks{LinkID: "a", Clicks: 2}, top[4])
}

func TestGetPerformanceAnalytics(t *testing.T) {
	kv := NewMemoryKV()
	s := NewAffiliateStore(kv)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.True(t, s.TrackClick(ctx, "link-1", "u1", nil, models.ClientContext{}).Success)
	}

	// Seed one conversion into the conversions slot; nothing in-process writes it.
	doc, err := json.Marshal([]models.AffiliateConversion{{
		ConversionID: "conv-1", AffiliateCode: "aff-1", ConvertedAt: time.Now().UTC(),
	}})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, slotAffiliateConversions, string(doc)))

	analytics := s.GetPerformanceAnalytics(ctx)
	assert.Equal(t, 4, analytics.TotalClicks)
	assert.Equal(t, 1, analytics.TotalConversions)
	assert.Equal(t, "25.00", analytics.ConversionRate)
	require.Len(t, analytics.TopPerformingLinks, 1)
	assert.Equal(t, models.LinkClicks{LinkID: "link-1", Clicks: 4}, analytics.TopPerformingLinks[0])
	assert.Len(t, analytics.RecentActivity, 4)
}

func TestGetPerformanceAnalyticsEmpty(t *testing.T) {
	s := NewAffiliateStore(NewMemoryKV())

	analytics := s.GetPerformanceAnalytics(context.Background())
	assert.Equal(t, 0, analytics.TotalClicks)
	assert.Equal(t, "0.00", analytics.ConversionRate)
	assert.Empty(t, analytics.TopPerformingLinks)
	assert.Empty(t, analytics.RecentActivity)
}

func TestRecentActivityNewestFirstCappedAtTen(t *testing.T) {
	kv := NewMemoryKV()
	s := NewAffiliateStore(kv)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.True(t, s.TrackClick(ctx, "link", "u", map[string]string{"seq": string(rune('a' + i))}, models.ClientContext{}).Success)
	}

	analytics := s.GetPerformanceAnalytics(ctx)
	require.Len(t, analytics.RecentActivity, 10)
	assert.Equal(t, map[string]string{"seq": "l"}, analytics.RecentActivity[0].Metadata, "newest click comes first")
	assert.Equal(t, map[string]string{"seq": "c"}, analytics.RecentActivity[9].Metadata)
}
