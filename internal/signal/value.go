// Package signal defines the value model shared by every probe in the
// fingerprint pipeline: a small tagged union over the shapes a probe may
// legally produce, plus an insertion-ordered record type.
//
// Probes never return errors. A probe that cannot produce a real value
// produces a sentinel Value carrying a stable error code instead, so the
// collector needs no per-probe failure handling.
package signal

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindList
	KindRecord
	KindSentinel
)

// Value is the single result type of a probe. The zero Value is an empty
// string. Values are immutable once constructed.
type Value struct {
	kind     Kind
	str      string
	num      float64
	list     []Value
	rec      *Record
	sentinel string
}

// String constructs a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number constructs a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int constructs a numeric Value from an integer.
func Int(n int) Value {
	return Number(float64(n))
}

// List constructs an ordered-list Value. Elements keep their given order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Strings constructs a list Value from plain strings.
func Strings(items ...string) Value {
	vs := make([]Value, len(items))
	for i, s := range items {
		vs[i] = String(s)
	}
	return List(vs...)
}

// FromRecord constructs a nested-record Value.
func FromRecord(r *Record) Value {
	return Value{kind: KindRecord, rec: r}
}

// Sentinel constructs a sentinel Value carrying a stable error code such as
// "canvas-error" or "no-webgl".
func Sentinel(code string) Value {
	return Value{kind: KindSentinel, sentinel: code}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsSentinel reports whether v signals an absent or failed capability.
func (v Value) IsSentinel() bool { return v.kind == KindSentinel }

// SentinelCode returns the error code of a sentinel Value, or "".
func (v Value) SentinelCode() string { return v.sentinel }

// Text returns the raw string of a string Value, or "".
func (v Value) Text() string { return v.str }

// Num returns the numeric payload of a number Value, or 0.
func (v Value) Num() float64 { return v.num }

// Record returns the nested record of a record Value, or nil.
func (v Value) Record() *Record { return v.rec }

// Items returns the elements of a list Value.
func (v Value) Items() []Value { return v.list }

// Encode renders v in its deterministic textual form.
//
// Strings, numbers and sentinel codes render verbatim. Lists render as
// [elem,...] and records as {"key":elem,...}, with string leaves quoted and
// keys in insertion order. The output is a pure function of v: two equal
// Values always encode to identical bytes.
func (v Value) Encode() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindSentinel:
		return v.sentinel
	default:
		var b strings.Builder
		v.encodeNested(&b)
		return b.String()
	}
}

// encodeNested writes the bracketed form used inside lists and records,
// where string leaves must be quoted to keep element boundaries unambiguous.
func (v Value) encodeNested(b *strings.Builder) {
	switch v.kind {
	case KindString:
		b.WriteString(quote(v.str))
	case KindNumber:
		b.WriteString(formatNumber(v.num))
	case KindSentinel:
		b.WriteString(quote(v.sentinel))
	case KindList:
		b.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				b.WriteByte(',')
			}
			item.encodeNested(b)
		}
		b.WriteByte(']')
	case KindRecord:
		b.WriteByte('{')
		for i, key := range v.rec.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(key))
			b.WriteByte(':')
			item := v.rec.vals[key]
			item.encodeNested(b)
		}
		b.WriteByte('}')
	}
}

// MarshalJSON renders v as JSON. Non-finite numbers, which JSON cannot
// express, render as their literal names in a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return []byte(quote(v.str)), nil
	case KindSentinel:
		return []byte(quote(v.sentinel)), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte(quote(formatNumber(v.num))), nil
		}
		return []byte(formatNumber(v.num)), nil
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindRecord:
		return v.rec.MarshalJSON()
	}
	return []byte(`""`), nil
}

// formatNumber renders a float the way the pipeline's format contract
// requires: integral values without exponent or fraction, everything else in
// shortest round-trip form, and the IEEE edge cases by their literal names
// so the math battery records them as-is.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		// Normalizes -0 to "0".
		if f == 0 {
			return "0"
		}
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// quote produces a double-quoted, escaped form of s. strconv.Quote escaping
// is valid JSON for the characters probes actually emit and is stable across
// Go releases for the same input.
func quote(s string) string {
	return strconv.Quote(s)
}

// Record is an insertion-ordered mapping from signal names to Values.
// Key order is a contract of whoever assembles the record (the collector
// fixes it per pipeline version), never of the host environment.
type Record struct {
	keys []string
	vals map[string]Value
}

// NewRecord returns an empty ordered record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set stores v under key. A repeated key keeps its original position.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the Value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int { return len(r.keys) }

// MarshalJSON renders the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quote(key))
		buf.WriteByte(':')
		b, err := r.vals[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
