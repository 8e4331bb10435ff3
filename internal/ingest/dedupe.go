package ingest

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the content hash used for duplicate-file detection:
// hex sha256 of the exact extracted text. Order-sensitive and
// deterministic; only textual content matters.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// IsDuplicate reports whether a hash is in the known set. The set itself
// is persisted by the caller; this side only computes membership.
func IsDuplicate(hash string, known map[string]bool) bool {
	return known[hash]
}
