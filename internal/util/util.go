package util

import (
	"crypto/sha1"
	"encoding/hex"
)

// ContentHash returns a stable hex digest of file content. Used to
// detect unchanged feed output before overwriting.
func ContentHash(data []byte) string {
	hasher := sha1.New()
	hasher.Write(data)

	return hex.EncodeToString(hasher.Sum(nil))
}
