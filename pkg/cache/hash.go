package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HTTPKey builds the cache key for an upstream response.
// The key format is: http:namespace:part1/part2/...
func HTTPKey(namespace string, parts ...string) string {
	return "http:" + namespace + ":" + strings.Join(parts, "/")
}
