package hostenv

import (
	"strings"
	"testing"

	"github.com/tusharlock10/envseed/internal/probe"
)

func TestOverridesWinOverSampling(t *testing.T) {
	h := New()
	h.UserAgentOverride = "pinned/1.0"
	h.PlatformOverride = "pinned-os"
	h.LanguageOverride = "xx_XX"

	if ua, err := h.UserAgent(); err != nil || ua != "pinned/1.0" {
		t.Fatalf("UserAgent = %q, %v", ua, err)
	}
	if p, err := h.Platform(); err != nil || p != "pinned-os" {
		t.Fatalf("Platform = %q, %v", p, err)
	}
	if l, err := h.Language(); err != nil || l != "xx_XX" {
		t.Fatalf("Language = %q, %v", l, err)
	}
}

func TestLanguageStripsEncodingSuffix(t *testing.T) {
	t.Setenv("LC_ALL", "en_US.UTF-8")

	l, err := New().Language()
	if err != nil {
		t.Fatal(err)
	}
	if l != "en_US" {
		t.Fatalf("Language = %q, want en_US", l)
	}
}

func TestLanguageIgnoresPOSIXLocales(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_MESSAGES", "POSIX")
	t.Setenv("LANG", "")

	if _, err := New().Language(); err != probe.ErrNotSupported {
		t.Fatalf("Language error = %v, want ErrNotSupported", err)
	}
}

func TestTimezoneHonorsTZ(t *testing.T) {
	t.Setenv("TZ", "America/New_York")

	tz, err := New().Timezone()
	if err != nil {
		t.Fatal(err)
	}
	if tz != "America/New_York" {
		t.Fatalf("Timezone = %q, want America/New_York", tz)
	}
}

func TestDisplayIsAbsent(t *testing.T) {
	if _, err := New().Display(); err != probe.ErrNotSupported {
		t.Fatalf("Display error = %v, want ErrNotSupported", err)
	}
}

func TestUserAgentShape(t *testing.T) {
	ua, err := New().UserAgent()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(ua, "Go/go") {
		t.Fatalf("UserAgent = %q, want Go/go<version> prefix", ua)
	}
}
