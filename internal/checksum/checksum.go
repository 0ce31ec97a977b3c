// Package checksum fingerprints content documents.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Combine folds several sums into one, order-sensitive.
func Combine(sums ...string) string {
	return Sum([]byte(strings.Join(sums, ":")))
}

// ETag formats a sum as a strong HTTP entity tag.
func ETag(sum string) string {
	if sum == "" {
		return ""
	}
	if len(sum) > 16 {
		sum = sum[:16]
	}
	return `"` + sum + `"`
}
