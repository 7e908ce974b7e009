// api/rewardful/client.go

// Package rewardful stubs the Rewardful affiliate-program API. No real network
// calls are made: the client logs the request, simulates call latency, and
// always completes in bounded time with a success or failure result. Nothing
// here panics or returns an error past the package boundary.
package rewardful

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const defaultLatency = 500 * time.Millisecond

type Client struct {
	apiKey  string
	baseURL string
	latency time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.rewardful.com/v1",
		latency: defaultLatency,
	}
}

// WithLatency overrides the simulated call latency. Tests pass 0.
func (c *Client) WithLatency(d time.Duration) *Client {
	c.latency = d
	return c
}

// ConversionResult is the affiliate API's answer to a conversion report.
type ConversionResult struct {
	Success       bool   `json:"success"`
	ConversionID  string `json:"conversionId,omitempty"`
	AffiliateCode string `json:"affiliateCode,omitempty"`
	Email         string `json:"email,omitempty"`
	Error         string `json:"error,omitempty"`
}

// OnboardingResult is the affiliate API's answer to an onboarding request.
type OnboardingResult struct {
	Success     bool   `json:"success"`
	AffiliateID string `json:"affiliateId,omitempty"`
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TrackConversion reports a lead conversion to the affiliate program.
func (c *Client) TrackConversion(ctx context.Context, email, affiliateCode string, conversionData map[string]any) ConversionResult {
	log.Printf("Tracking affiliate conversion: email=%s code=%s data=%v", email, affiliateCode, conversionData)

	if err := c.simulateCall(ctx); err != nil {
		return ConversionResult{Success: false, Error: err.Error()}
	}

	return ConversionResult{
		Success:       true,
		ConversionID:  uuid.New().String(),
		AffiliateCode: affiliateCode,
		Email:         email,
	}
}

// CreateAffiliateOnboarding registers a new affiliate partner and kicks off
// their onboarding sequence.
func (c *Client) CreateAffiliateOnboarding(ctx context.Context, email string, affiliateData map[string]any) OnboardingResult {
	affiliateID := uuid.New().String()
	log.Printf("Creating affiliate onboarding: email=%s id=%s status=pending_approval data=%v",
		email, affiliateID, affiliateData)

	if err := c.simulateCall(ctx); err != nil {
		return OnboardingResult{Success: false, Error: err.Error()}
	}

	return OnboardingResult{
		Success:     true,
		AffiliateID: affiliateID,
		Status:      "onboarding_started",
	}
}

// simulateCall waits out the configured latency. Completion is bounded: either
// the latency elapses or the caller's context ends, so a waiting caller can
// only ever observe eventual success or failure.
func (c *Client) simulateCall(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
