package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// NormalizedKey lowercases and hashes free-text input so that place names
// with spaces, commas or unicode stay valid cache keys.
func NormalizedKey(prefix, text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	hasher := md5.New()
	hasher.Write([]byte(normalized))
	return GenerateKey(prefix, hex.EncodeToString(hasher.Sum(nil)))
}

func jsonInto(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(raw), dest)
}
