package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "prefix:digest" cache key from the JSON encoding
// of parts. JSON keeps struct and map fields in a stable order, so
// equal key opts always hash the same.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the full hex SHA-256 digest of data. Plan content
// hashes and cache key digests both use it, so collisions are not a
// practical concern.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
