package utils

import (
	"os"

	"launchkit/api/models"
)

// IsValidEventName reports whether name is one of the event names the tracking
// layer records.
func IsValidEventName(name string) bool {
	switch name {
	case models.EventPageView, models.EventEmailSignup, models.EventAffiliateClick,
		models.EventConversion, models.EventABTestVariant, models.EventABTestConversion:
		return true
	default:
		return false
	}
}

// EnvOr returns the value of the environment variable key, or fallback when it
// is unset or empty.
func EnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
