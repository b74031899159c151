package htmlclean

import (
	"strings"
	"testing"
)

func TestCleanPreservesImageSource(t *testing.T) {
	out := Clean(`<p>hello <img src="https://example.com/wp-content/uploads/a.jpg" alt="a"></p>`)

	if !strings.Contains(out, `data-wp-src="https://example.com/wp-content/uploads/a.jpg"`) {
		t.Errorf("Expected data-wp-src attribute, got %q", out)
	}
	if !strings.Contains(out, ` src="https://example.com/wp-content/uploads/a.jpg"`) {
		t.Errorf("Expected src attribute to be kept, got %q", out)
	}
	if !strings.HasPrefix(out, "<p>hello ") {
		t.Errorf("Expected surrounding markup to be kept, got %q", out)
	}
}

func TestCleanWithoutImagesKeepsMarkup(t *testing.T) {
	if got := Clean("<p>hi</p>"); got != "<p>hi</p>" {
		t.Errorf("Expected '<p>hi</p>', got '%s'", got)
	}
}

func TestCleanBlankInput(t *testing.T) {
	for _, in := range []string{"", "NULL"} {
		if got := Clean(in); got != "" {
			t.Errorf("Expected empty output for %q, got '%s'", in, got)
		}
	}
}

func TestText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Title", "Title"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"It&#8217;s here", "It’s here"},
		{"<strong>Bold</strong> move", "Bold move"},
		{"", ""},
		{"NULL", ""},
	}

	for _, tc := range testCases {
		if got := Text(tc.input); got != tc.expected {
			t.Errorf("Text(%q): expected '%s', got '%s'", tc.input, tc.expected, got)
		}
	}
}
