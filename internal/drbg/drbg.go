// Package drbg implements the NIST SP 800-90A HMAC-DRBG (SHA-256) with
// (K, V) state: Instantiate, Reseed and Generate with additional-input
// mixing, plus convenience draws on top of Generate: RandInt with rejection
// sampling (uniform, no modulo bias), RandomFloat with 53 bits of precision,
// and Uniform.
//
// The generator is fully deterministic in its inputs: the fingerprint digest
// is the intended personalization string, giving every host its own stable
// stream.
package drbg

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
)

// outLen is the SHA-256 output size, the length of both K and V.
const outLen = sha256.Size

// DefaultReseedInterval is the generate-call budget before Reseed is
// required. SP 800-90A allows up to 2^48 requests between reseeds.
const DefaultReseedInterval = uint64(1) << 48

// ErrReseedRequired is returned by Generate once the reseed counter exceeds
// the reseed interval.
var ErrReseedRequired = errors.New("drbg: reseed required (reseed counter exceeded reseed interval)")

// DRBG is an instantiated HMAC-DRBG. Not safe for concurrent use.
type DRBG struct {
	k              []byte
	v              []byte
	reseedCounter  uint64
	reseedInterval uint64
}

// New instantiates the DRBG from entropy input, a nonce and a
// personalization string (10.1.2.3 Instantiate Process).
func New(entropyInput, nonce, personalization []byte) *DRBG {
	d := &DRBG{
		k:              make([]byte, outLen),
		v:              make([]byte, outLen),
		reseedInterval: DefaultReseedInterval,
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	seedMaterial := concat(entropyInput, nonce, personalization)
	d.update(seedMaterial)
	d.reseedCounter = 1
	return d
}

// hmacSum computes HMAC-SHA256(key, data).
func hmacSum(key []byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// update is the 10.1.2.2 Update Function.
func (d *DRBG) update(providedData []byte) {
	d.k = hmacSum(d.k, d.v, []byte{0x00}, providedData)
	d.v = hmacSum(d.k, d.v)

	if len(providedData) > 0 {
		d.k = hmacSum(d.k, d.v, []byte{0x01}, providedData)
		d.v = hmacSum(d.k, d.v)
	}
}

// Reseed mixes fresh entropy into the state (10.1.2.4 Reseed Process) and
// resets the reseed counter.
func (d *DRBG) Reseed(entropyInput, additionalInput []byte) {
	d.update(concat(entropyInput, additionalInput))
	d.reseedCounter = 1
}

// Generate produces n pseudorandom bytes (10.1.2.5 Generate Process),
// optionally mixing additionalInput before generation and updating again
// after generation when additionalInput is non-empty.
func (d *DRBG) Generate(n int, additionalInput []byte) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("drbg: invalid request length %d", n)
	}
	if d.reseedCounter > d.reseedInterval {
		return nil, ErrReseedRequired
	}

	if len(additionalInput) > 0 {
		d.k = hmacSum(d.k, d.v, []byte{0x00}, additionalInput)
		d.v = hmacSum(d.k, d.v)
	}

	out := make([]byte, 0, n+outLen)
	for len(out) < n {
		d.v = hmacSum(d.k, d.v)
		out = append(out, d.v...)
	}
	out = out[:n]

	if len(additionalInput) > 0 {
		d.k = hmacSum(d.k, d.v, []byte{0x00}, additionalInput)
		d.v = hmacSum(d.k, d.v)
	}

	d.reseedCounter++
	return out, nil
}

// RandomBytes is Generate with no additional input.
func (d *DRBG) RandomBytes(n int) ([]byte, error) {
	return d.Generate(n, nil)
}

// RandInt returns a uniform integer in [a, b] using rejection sampling, so
// the draw carries no modulo bias.
func (d *DRBG) RandInt(a, b int64) (int64, error) {
	if a > b {
		return 0, fmt.Errorf("drbg: invalid range [%d, %d]", a, b)
	}
	span := uint64(b-a) + 1

	// Smallest k with 2^(8k) >= span.
	k := 1
	for k < 8 && (uint64(1)<<(8*k)) < span {
		k++
	}

	// limit = floor(2^(8k)/span)*span - 1, the largest acceptable draw.
	var limit uint64
	if k < 8 {
		space := uint64(1) << (8 * k)
		limit = space/span*span - 1
	} else {
		// 2^64 does not fit in uint64; derive the remainder of 2^64/span
		// from MaxUint64 instead.
		r := (math.MaxUint64%span + 1) % span
		limit = math.MaxUint64 - r
	}

	for {
		raw, err := d.Generate(k, nil)
		if err != nil {
			return 0, err
		}
		var x uint64
		for _, c := range raw {
			x = x<<8 | uint64(c)
		}
		if x <= limit {
			return a + int64(x%span), nil
		}
	}
}

// RandomFloat returns a uniform float in [0, 1) with 53 bits of precision.
func (d *DRBG) RandomFloat() (float64, error) {
	// 7 bytes = 56 bits; discard the 3 high bits to keep 53.
	raw, err := d.Generate(7, nil)
	if err != nil {
		return 0, err
	}
	var x uint64
	for _, c := range raw {
		x = x<<8 | uint64(c)
	}
	x >>= 3
	return float64(x) / (1 << 53), nil
}

// Uniform returns a uniform float in [a, b).
func (d *DRBG) Uniform(a, b float64) (float64, error) {
	f, err := d.RandomFloat()
	if err != nil {
		return 0, err
	}
	return a + (b-a)*f, nil
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
