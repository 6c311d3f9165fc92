package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers for reading sessions.
type Generator interface {
	New() string
}

// RandomHex yields 16 hex characters, short enough to type on the CLI.
type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
