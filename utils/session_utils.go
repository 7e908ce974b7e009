package utils

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"time"
)

// GenerateSessionID creates the opaque session token minted once per process
// lifetime. It is the sole identity used for deterministic variant bucketing and
// is deliberately not persisted: a restart starts a fresh session.
func GenerateSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Printf("ERROR: Failed to generate random bytes for session ID: %v", err)
		return "session_" + time.Now().Format("20060102150405") // Fallback, still usable for bucketing
	}
	// Encode to Base64 to make it a URL-safe string
	return "session_" + base64.URLEncoding.EncodeToString(b)
}
