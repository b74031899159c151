package logging

import (
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestNewFormats(t *testing.T) {
	for _, format := range []string{"", "console", "JSON", "pretty"} {
		p, err := New("info", format)
		if err != nil {
			t.Errorf("format %q: expected no error, got %v", format, err)
			continue
		}
		if p.Get("strapi") == nil {
			t.Errorf("format %q: expected a child logger", format)
		}
	}

	if _, err := New("info", "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestNormalizeLevel(t *testing.T) {
	testCases := map[string]string{
		"debug":   glog.Debug,
		" WARN ":  glog.Warn,
		"warning": glog.Warn,
		"error":   glog.Error,
		"":        "",
		"verbose": "",
	}
	for in, want := range testCases {
		if got := normalizeLevel(in); got != want {
			t.Errorf("normalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNilProviderFallsBackToNop(t *testing.T) {
	var p *Provider
	log := p.Get("migrate")
	if _, ok := log.(nop); !ok {
		t.Errorf("Expected nop logger, got %T", log)
	}
	log.Info("ignored", "k", "v")
}
