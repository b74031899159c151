package shortcode

import "regexp"

// KindPodcastSubscribe is the stats key for subscribe buttons.
const KindPodcastSubscribe = "podcast_subscribe"

const podcastMarker = "podcast-subscribe"

var (
	podcastRawRe  = regexp.MustCompile(`\[podcast_subscribe[^\]]*\]`)
	podcastHTMLRe = regexp.MustCompile(`(?s)<div class="my-6">\s*<a href="https://open\.spotify\.com/show/[^"]+"\s+[^>]*>\s*<svg[^>]*>.*?</svg>\s*Subscribe on Spotify\s*</a>\s*</div>`)
)

// PodcastSubscribe rewrites subscribe buttons to {{podcast-subscribe:SHOW}}.
type PodcastSubscribe struct {
	ShowID string
}

func (p PodcastSubscribe) Kind() string { return KindPodcastSubscribe }

func (p PodcastSubscribe) Rewrite(content string, rep Representation) (string, int) {
	if !safePayload(p.ShowID) {
		return content, 0
	}
	out := marker(podcastMarker, p.ShowID)

	var total int
	if rep.Has(RawShortcode) {
		var n int
		content, n = replaceLiteral(podcastRawRe, content, out)
		total += n
	}
	if rep.Has(InterimHTML) {
		var n int
		content, n = replaceLiteral(podcastHTMLRe, content, out)
		total += n
	}
	return content, total
}
