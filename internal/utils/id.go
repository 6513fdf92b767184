package utils

import (
	"crypto/rand" // secure random source for identifiers
	"encoding/hex"
	"fmt"
)

// NewID returns an opaque identifier composed of a short type prefix,
// an underscore and 16 hex characters of secure randomness, e.g.
// "rv_9f2c01ab34de56f7". Prefixes make identifiers self-describing in
// logs and audit entries without implying any ordering.
func NewID(prefix string) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; panic keeps
		// identifier generation infallible for callers.
		panic(fmt.Sprintf("utils: random id: %v", err))
	}
	return prefix + "_" + hex.EncodeToString(buf)
}
