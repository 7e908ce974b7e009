package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"os"
	"strings"
)

var emailHashKey = []byte(os.Getenv("EMAIL_HASH_KEY"))

// BucketHash is the deterministic, non-cryptographic hash used for experiment
// bucketing. Stability across calls is what matters here, not collision
// resistance; do not use it for anything privacy-sensitive.
func BucketHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// HashEmail derives the opaque token stored in place of a raw email address.
// HMAC-SHA256 keyed with EMAIL_HASH_KEY: identical inputs always yield the same
// token, and the raw address is not recoverable from the stored value.
func HashEmail(email string) string {
	mac := hmac.New(sha256.New, emailHashKey)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "hash_" + hex.EncodeToString(mac.Sum(nil))[:16]
}
