package signal

import (
	"math"
	"testing"
)

func TestEncodeScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{String("UA/1.0"), "UA/1.0"},
		{Int(800), "800"},
		{Number(0.5), "0.5"},
		{Number(-0.0), "0"},
		{Number(math.NaN()), "NaN"},
		{Number(math.Inf(1)), "Infinity"},
		{Number(math.Inf(-1)), "-Infinity"},
		{Sentinel("no-webgl"), "no-webgl"},
	}
	for _, tc := range cases {
		if got := tc.v.Encode(); got != tc.want {
			t.Fatalf("Encode() = %q, want %q", got, tc.want)
		}
	}
}

func TestEncodeIntegralFloatHasNoExponent(t *testing.T) {
	if got := Number(1e6).Encode(); got != "1000000" {
		t.Fatalf("Encode(1e6) = %q, want %q", got, "1000000")
	}
}

func TestEncodeList(t *testing.T) {
	v := Strings("chrome-extension://abc", "moz-extension://def")
	want := `["chrome-extension://abc","moz-extension://def"]`
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeNestedRecordKeepsInsertionOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("vendor", String("X"))
	rec.Set("renderer", String("Y"))
	v := FromRecord(rec)
	want := `{"vendor":"X","renderer":"Y"}`
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeRecordWithListAndNumber(t *testing.T) {
	rec := NewRecord()
	rec.Set("globals", Strings("DarkReader"))
	rec.Set("count", Int(2))
	rec.Set("state", Sentinel("not-available"))
	want := `{"globals":["DarkReader"],"count":2,"state":"not-available"}`
	if got := FromRecord(rec).Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestRecordSetRepeatedKeyKeepsPosition(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", Int(1))
	rec.Set("b", Int(2))
	rec.Set("a", Int(3))

	keys := rec.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	v, ok := rec.Get("a")
	if !ok || v.Num() != 3 {
		t.Fatalf("expected overwritten value 3, got %v", v)
	}
}

func TestMarshalJSONOrderedAndEdgeCases(t *testing.T) {
	rec := NewRecord()
	rec.Set("z", String("kept first"))
	rec.Set("a", Number(math.NaN()))
	rec.Set("list", List(Int(1), String("x")))

	out, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"z":"kept first","a":"NaN","list":[1,"x"]}`
	if string(out) != want {
		t.Fatalf("MarshalJSON = %s, want %s", out, want)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	build := func() Value {
		rec := NewRecord()
		rec.Set("vendor", String("X"))
		rec.Set("values", List(Number(0.1), Number(math.Inf(-1))))
		return FromRecord(rec)
	}
	if a, b := build().Encode(), build().Encode(); a != b {
		t.Fatalf("Encode not deterministic: %q vs %q", a, b)
	}
}
