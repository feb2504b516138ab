// Package canonical owns the fingerprint serialization format: the versioned
// field order, the per-field encoding rules, the truncation limits for
// unbounded fields, and the join delimiter. Every constant here is part of
// the format contract: changing any of them changes every digest.
package canonical

import (
	"strings"

	"github.com/tusharlock10/envseed/internal/signal"
)

// Version identifies the field-order contract below. Bump it whenever the
// field set, field order, encoding rules or truncation limits change.
const Version = 1

// Delimiter joins the encoded fields. Field content is not escaped against
// it: a field value containing "|" would shift field boundaries. This is a
// known weakness of the format, kept for byte-compatibility; in practice no
// probe emits the delimiter.
const Delimiter = "|"

// Field names of the version-1 record. The collector assembles records with
// exactly these keys, in exactly this order, on every host.
const (
	FieldUserAgent           = "userAgent"
	FieldPlatform            = "platform"
	FieldLanguage            = "language"
	FieldTimezone            = "timezone"
	FieldTimezoneOffset      = "timezoneOffset"
	FieldScreenWidth         = "screenWidth"
	FieldScreenHeight        = "screenHeight"
	FieldColorDepth          = "colorDepth"
	FieldPixelDepth          = "pixelDepth"
	FieldHardwareConcurrency = "hardwareConcurrency"
	FieldWebGLInfo           = "webglInfo"
	FieldCanvas              = "canvas"
	FieldWebGL               = "webgl"
	FieldExtensions          = "extensions"
	FieldMath                = "math"
)

// FieldOrder is the assembly and canonicalization order of the version-1
// record.
var FieldOrder = []string{
	FieldUserAgent,
	FieldPlatform,
	FieldLanguage,
	FieldTimezone,
	FieldTimezoneOffset,
	FieldScreenWidth,
	FieldScreenHeight,
	FieldColorDepth,
	FieldPixelDepth,
	FieldHardwareConcurrency,
	FieldWebGLInfo,
	FieldCanvas,
	FieldWebGL,
	FieldExtensions,
	FieldMath,
}

// Maximum encoded lengths, in characters, for the fields whose encodings are
// large or unbounded. Prefix truncation at these lengths bounds the digest
// input; the specific numbers carry no meaning beyond reproducibility.
const (
	MaxWebGLInfoLen  = 256
	MaxExtensionsLen = 512
	MaxMathLen       = 512
)

var truncationLimits = map[string]int{
	FieldWebGLInfo:  MaxWebGLInfoLen,
	FieldExtensions: MaxExtensionsLen,
	FieldMath:       MaxMathLen,
}

// Canonicalize renders rec as the single delimited canonical string. It is a
// pure function of the record: same record, same bytes. The record's own key
// order is used, which the collector fixes to FieldOrder.
func Canonicalize(rec *signal.Record) string {
	keys := rec.Keys()
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		v, _ := rec.Get(key)
		enc := v.Encode()
		if limit, ok := truncationLimits[key]; ok {
			enc = Truncate(enc, limit)
		}
		parts = append(parts, enc)
	}
	return strings.Join(parts, Delimiter)
}

// Truncate returns the prefix of s holding at most max characters. Counting
// is by rune so a multi-byte character is never split.
func Truncate(s string, max int) string {
	if max < 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
