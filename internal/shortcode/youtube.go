package shortcode

import (
	"net/url"
	"regexp"
	"strings"
)

// KindYouTube is the marker and stats key for video embeds.
const KindYouTube = "youtube"

var (
	youtubeRawRe   = regexp.MustCompile(`\[youtube\s+(https?://[^\]]+)\]`)
	youtubeBlockRe = regexp.MustCompile(`(?s)<!-- wp:core-embed/youtube[^>]*-->\s*<figure[^>]*>.*?<div[^>]*>\s*(https?://[^\s<]+)\s*</div>.*?</figure>\s*<!-- /wp:core-embed/youtube -->`)
	youtubeHTMLRe  = regexp.MustCompile(`(?s)<div class="my-6 relative w-full"[^>]*>\s*<iframe[^>]*?\ssrc="(https://www\.youtube\.com/embed/[^"]+)"[^>]*>\s*</iframe>\s*</div>`)
	videoIDRe      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// YouTube rewrites [youtube URL], block embeds and interim iframes to
// {{youtube:ID}}. A URL whose id cannot be resolved is left untouched.
type YouTube struct{}

func (YouTube) Kind() string { return KindYouTube }

func (YouTube) Rewrite(content string, rep Representation) (string, int) {
	toMarker := func(g []string) (string, bool) {
		id := ExtractYouTubeID(strings.TrimSpace(g[1]))
		if !videoIDRe.MatchString(id) {
			return "", false
		}
		return marker(KindYouTube, id), true
	}

	var total int
	if rep.Has(RawShortcode) {
		var n int
		content, n = replace(youtubeRawRe, content, toMarker)
		total += n
	}
	if rep.Has(BlockEmbed) {
		var n int
		content, n = replace(youtubeBlockRe, content, toMarker)
		total += n
	}
	if rep.Has(InterimHTML) {
		var n int
		content, n = replace(youtubeHTMLRe, content, toMarker)
		total += n
	}
	return content, total
}

// ExtractYouTubeID returns the video id from watch, youtu.be and embed URLs,
// or "" when the URL is not one of those shapes.
func ExtractYouTubeID(raw string) string {
	switch {
	case strings.Contains(raw, "youtube.com/watch"):
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return u.Query().Get("v")
	case strings.Contains(raw, "youtu.be/"):
		return beforeQuery(lastPart(raw, "youtu.be/"))
	case strings.Contains(raw, "youtube.com/embed/"):
		return beforeQuery(lastPart(raw, "/embed/"))
	}
	return ""
}

func lastPart(s, sep string) string {
	i := strings.LastIndex(s, sep)
	return s[i+len(sep):]
}

func beforeQuery(s string) string {
	if i := strings.IndexAny(s, "?&#"); i >= 0 {
		return s[:i]
	}
	return s
}
