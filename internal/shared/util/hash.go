package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashEmailKey returns a stable log-safe identifier for an email address,
// so raw addresses never land in telemetry output.
func HashEmailKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
