// Package digest reduces a canonical fingerprint string to a fixed-format
// hexadecimal identifier.
//
// The primary path is SHA-256 over the UTF-8 bytes of the input, rendered as
// 64 lowercase hex characters. When the cryptographic capability is absent
// the engine degrades to a deterministic 32-bit rolling hash; the two paths
// produce different widths and callers must not assume equal strength.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"unicode/utf16"
)

// Hasher is the cryptographic digest capability. Absence is a legitimate
// state, not an error: it routes the engine onto the fallback path.
type Hasher interface {
	// Available reports whether Sum256 can be used.
	Available() bool
	// Sum256 computes a 256-bit digest over data.
	Sum256(data []byte) [32]byte
}

// sha256Hasher is the default Hasher backed by crypto/sha256.
type sha256Hasher struct{}

func (sha256Hasher) Available() bool             { return true }
func (sha256Hasher) Sum256(data []byte) [32]byte { return sha256.Sum256(data) }

// Unavailable is a Hasher that reports the cryptographic capability absent.
// It exists for tests and for embedders whose platform digest is optional.
type Unavailable struct{}

func (Unavailable) Available() bool             { return false }
func (Unavailable) Sum256(data []byte) [32]byte { return [32]byte{} }

// Engine computes digests, switching between the cryptographic and fallback
// paths based on Hasher availability. The switch is recovered locally and is
// never surfaced to the caller.
type Engine struct {
	hasher Hasher
}

// NewEngine returns an Engine using the given Hasher. A nil Hasher selects
// the built-in SHA-256 implementation.
func NewEngine(h Hasher) *Engine {
	if h == nil {
		h = sha256Hasher{}
	}
	return &Engine{hasher: h}
}

// Digest reduces canonical to its hexadecimal identifier.
func (e *Engine) Digest(canonical string) string {
	if e.hasher.Available() {
		sum := e.hasher.Sum256([]byte(canonical))
		return hex.EncodeToString(sum[:])
	}
	return Fallback(canonical)
}

// Fallback computes the non-cryptographic rolling hash:
//
//	h = h*31 + codeUnit, over every UTF-16 code unit, wrapping in signed
//	32-bit two's-complement arithmetic; the result is the absolute value in
//	lowercase hex.
//
// Empty input yields "0". The output width varies (1–8 hex characters); it
// is a weaker, higher-collision identifier than the SHA-256 path but equally
// deterministic.
func Fallback(s string) string {
	if s == "" {
		return "0"
	}
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	// Widen before negating: -MinInt32 is not representable in int32.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}
