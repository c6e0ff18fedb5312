package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentIDLength is the prefix length of the digest used for content ids.
// Content ids appear in URLs and logs, so they stay short and glanceable;
// media ids use the full digest since they are opaque keys only.
const ContentIDLength = 10

// HashID derives a stable identifier from the given parts. Parts are
// concatenated with no separator before hashing, so callers must normalize
// absent optional fields to the empty string; an absent field and an empty
// field hash identically.
func HashID(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

// ShortHashID is HashID truncated to ContentIDLength characters.
func ShortHashID(parts ...string) string {
	return HashID(parts...)[:ContentIDLength]
}
