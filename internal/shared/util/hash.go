package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a storage-safe identifier for a secret value.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
