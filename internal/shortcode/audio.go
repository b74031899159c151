package shortcode

import (
	"fmt"
	"regexp"
)

// KindAudio is the marker and stats key for audio players.
const KindAudio = "audio"

var (
	audioRawRe       = regexp.MustCompile(`\[audio\s+(?:src|mp3)="([^"]+)"[^\]]*\](?:\[/audio\])?`)
	buzzsproutParaRe = regexp.MustCompile(`<p>\[buzzsprout\s+episode=['"](\d+)['"][^\]]*\]</p>`)
	buzzsproutBareRe = regexp.MustCompile(`\[buzzsprout\s+episode=['"](\d+)['"][^\]]*\]`)
	audioHTMLRe      = regexp.MustCompile(`(?s)<div class="my-6">\s*<audio[^>]*>\s*<source src="([^"]+)"[^>]*>.*?</audio>\s*</div>`)
)

// Audio rewrites audio and buzzsprout shortcodes and interim players to
// {{audio:URL}}. Buzzsprout episodes resolve to the show's mp3 URL.
type Audio struct {
	BuzzsproutShowID string
}

func (a Audio) Kind() string { return KindAudio }

func (a Audio) Rewrite(content string, rep Representation) (string, int) {
	byURL := func(g []string) (string, bool) {
		if !safePayload(g[1]) {
			return "", false
		}
		return marker(KindAudio, g[1]), true
	}
	byEpisode := func(g []string) (string, bool) {
		if !safePayload(a.BuzzsproutShowID) {
			return "", false
		}
		return marker(KindAudio, a.EpisodeURL(g[1])), true
	}

	var total int
	if rep.Has(RawShortcode) {
		var n int
		content, n = replace(audioRawRe, content, byURL)
		total += n
		// paragraph-wrapped form first so the <p> goes with it
		content, n = replace(buzzsproutParaRe, content, byEpisode)
		total += n
		content, n = replace(buzzsproutBareRe, content, byEpisode)
		total += n
	}
	if rep.Has(InterimHTML) {
		var n int
		content, n = replace(audioHTMLRe, content, byURL)
		total += n
	}
	return content, total
}

// EpisodeURL is the public mp3 URL of a buzzsprout episode.
func (a Audio) EpisodeURL(episode string) string {
	return fmt.Sprintf("https://www.buzzsprout.com/%s/%s.mp3", a.BuzzsproutShowID, episode)
}
