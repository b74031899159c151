package shortcode

import (
	"regexp"
	"strings"
)

// Representation is the set of content shapes found in one content item.
// Content migrated at different times can mix shapes, so this is a bit set.
type Representation uint8

const (
	// RawShortcode is original WordPress syntax, e.g. [youtube URL].
	RawShortcode Representation = 1 << iota
	// InterimHTML is the hand-written HTML an earlier rewrite produced.
	InterimHTML
	// BlockEmbed is a WordPress block-comment embed (<!-- wp:core-embed/... -->).
	BlockEmbed
	// Marker is the canonical {{kind:payload}} syntax.
	Marker
)

var (
	rawShortcodeRe = regexp.MustCompile(`\[/?(?:podcast_subscribe|youtube|audio|buzzsprout|intense_tabs?)\b`)
	interimHTMLRe  = regexp.MustCompile(`<div class="(?:my-6(?: relative w-full| space-y-4)?|border-l-4 border-blue-600 pl-4)"`)
	blockEmbedRe   = regexp.MustCompile(`<!-- wp:core-embed/youtube\b`)
	markerRe       = regexp.MustCompile(`\{\{/?(?:podcast-subscribe|youtube|audio|tabs-start|tabs|tab)\b`)
)

// Detect resolves which representations are present in content.
func Detect(content string) Representation {
	var r Representation
	if rawShortcodeRe.MatchString(content) {
		r |= RawShortcode
	}
	if interimHTMLRe.MatchString(content) {
		r |= InterimHTML
	}
	if blockEmbedRe.MatchString(content) {
		r |= BlockEmbed
	}
	if markerRe.MatchString(content) {
		r |= Marker
	}
	return r
}

// Has reports whether every shape in x is present.
func (r Representation) Has(x Representation) bool {
	return r&x == x
}

// Canonical reports whether the content is already fully in marker form
// (or has nothing to rewrite at all).
func (r Representation) Canonical() bool {
	return r&^Marker == 0
}

func (r Representation) String() string {
	if r == 0 {
		return "plain"
	}
	var parts []string
	if r.Has(RawShortcode) {
		parts = append(parts, "raw-shortcode")
	}
	if r.Has(InterimHTML) {
		parts = append(parts, "interim-html")
	}
	if r.Has(BlockEmbed) {
		parts = append(parts, "block-embed")
	}
	if r.Has(Marker) {
		parts = append(parts, "marker")
	}
	return strings.Join(parts, "+")
}
