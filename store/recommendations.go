// api/store/recommendations.go
package store

import (
	"context"
	"strconv"

	"launchkit/api/models"
)

// GenerateOptimizationRecommendations evaluates the optimization rules against
// a fresh metrics snapshot.
func (s *AnalyticsStore) GenerateOptimizationRecommendations(ctx context.Context) []models.Recommendation {
	return RecommendationsFor(s.GetPerformanceMetrics(ctx))
}

// RecommendationsFor runs the rule set over a metrics snapshot. Rules are
// independent, evaluated in a fixed order, and may all fire at once; the result
// preserves rule order, not priority order.
func RecommendationsFor(m models.PerformanceMetrics) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, 3)

	rate, err := strconv.ParseFloat(m.ConversionRate, 64)
	if err != nil {
		rate = 0
	}

	if rate < 2 {
		recommendations = append(recommendations, models.Recommendation{
			Type:        "conversion_rate",
			Priority:    models.PriorityHigh,
			Title:       "Improve Conversion Rate",
			Description: "Your conversion rate is below 2%. Consider A/B testing different headlines, value propositions, or form designs.",
			Action:      "Run A/B tests on key page elements",
		})
	}

	if m.Last7Days.AffiliateClicks < 10 {
		recommendations = append(recommendations, models.Recommendation{
			Type:        "affiliate_engagement",
			Priority:    models.PriorityMedium,
			Title:       "Increase Affiliate Link Engagement",
			Description: "Affiliate link clicks are low. Consider making affiliate tools more prominent or adding more compelling descriptions.",
			Action:      "Optimize affiliate tool presentation",
		})
	}

	if m.Last7Days.EmailSignups == 0 {
		recommendations = append(recommendations, models.Recommendation{
			Type:        "lead_generation",
			Priority:    models.PriorityHigh,
			Title:       "No Email Signups Detected",
			Description: "No email signups in the last 7 days. Check form functionality and lead magnet appeal.",
			Action:      "Review and test email capture form",
		})
	}

	return recommendations
}
