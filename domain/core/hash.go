package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, for logs
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeFingerprint hashes an ordered list of identity parts. Parts are
// length-prefixed so ("ab","c") and ("a","bc") differ.
func ComputeFingerprint(parts ...interface{}) Hash {
	var data strings.Builder
	for _, part := range parts {
		s := fmt.Sprintf("%v", part)
		data.WriteString(fmt.Sprintf("%d:%s;", len(s), s))
	}
	return NewHash([]byte(data.String()))
}
