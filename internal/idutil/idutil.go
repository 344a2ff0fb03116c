package idutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DocumentPrefix prefixes every document id.
const DocumentPrefix = "doc"

// DocumentID derives a stable id from document content.
// Format: doc_XXXXXXXX (12 chars total)
func DocumentID(content string) string {
	return hashID(DocumentPrefix, content)
}

// hashID creates a short hash-based ID with the given prefix
// Format: {prefix}_{first 8 hex chars of SHA256}
func hashID(prefix, data string) string {
	hash := sha256.Sum256([]byte(data))
	hexHash := hex.EncodeToString(hash[:])
	return fmt.Sprintf("%s_%s", prefix, hexHash[:8])
}

// IsValidID checks if an ID matches the expected prefix format
func IsValidID(id, prefix string) bool {
	if len(id) < len(prefix)+1 {
		return false
	}
	return id[:len(prefix)] == prefix && id[len(prefix)] == '_'
}

// ExtractPrefix extracts the prefix from an ID
func ExtractPrefix(id string) string {
	for i, c := range id {
		if c == '_' {
			return id[:i]
		}
	}
	return ""
}
