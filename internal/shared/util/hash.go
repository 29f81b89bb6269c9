package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user ID to a fixed-length filesystem-safe key. User
// IDs carry provider prefixes with characters object keys cannot use.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
