package shortcode

import (
	"reflect"
	"testing"
)

const (
	testShow    = "0xcYcgrzcnsff0mkNX0fGh"
	testBuzz    = "2036436"
	episodeURL  = "https://www.buzzsprout.com/2036436/123.mp3"
	youtubeWrap = `<div class="my-6 relative w-full" style="padding-bottom: 56.25%;">
  <iframe class="absolute top-0 left-0 w-full h-full" src="https://www.youtube.com/embed/ABC123" frameborder="0" allowfullscreen>
  </iframe>
</div>`
	youtubeBlock = `<!-- wp:core-embed/youtube {"url":"https://youtu.be/ABC123","type":"video","providerNameSlug":"youtube"} -->
<figure class="wp-block-embed-youtube wp-block-embed is-type-video is-provider-youtube"><div class="wp-block-embed__wrapper">
https://youtu.be/ABC123
</div></figure>
<!-- /wp:core-embed/youtube -->`
	podcastHTML = `<div class="my-6">
  <a href="https://open.spotify.com/show/0xcYcgrzcnsff0mkNX0fGh" target="_blank" rel="noopener noreferrer" class="inline-flex items-center">
    <svg class="w-5 h-5" viewBox="0 0 24 24"><path d="M12 0C5.4 0 0 5.4 0 12"/></svg>
    Subscribe on Spotify
  </a>
</div>`
	audioHTML = `<div class="my-6">
  <audio controls class="w-full">
    <source src="https://cdn.example.com/ep1.mp3" type="audio/mpeg">
    Your browser does not support the audio element.
  </audio>
</div>`
	tabsHTML = `<!-- wp:shortcode -->
<div class="my-6 space-y-4">
<div class="border-l-4 border-blue-600 pl-4"><h3 class="text-lg font-semibold mb-2">One</h3>
<p>First</p>
</div>
<div class="border-l-4 border-blue-600 pl-4"><h3 class="text-lg font-semibold mb-2">Two</h3>
<p>Second</p>
</div>
</div>
<!-- /wp:shortcode -->`
	calloutBlock = `<!-- wp:shortcode --><div class="callout"><div class="inner">Note</div></div><!-- /wp:shortcode -->`
)

func newTestPipeline() *Pipeline {
	return New(Options{SpotifyShowID: testShow, BuzzsproutShowID: testBuzz})
}

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=ABC123", "ABC123"},
		{"https://youtu.be/ABC123", "ABC123"},
		{"https://www.youtube.com/embed/ABC123", "ABC123"},
		{"https://youtu.be/ABC123?t=42", "ABC123"},
		{"https://www.youtube.com/watch?feature=share&v=ABC123", "ABC123"},
		{"https://vimeo.com/12345", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ExtractYouTubeID(tt.url); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		counts map[string]int
	}{
		{
			name:   "raw youtube",
			in:     "<p>Intro</p>\n[youtube https://www.youtube.com/watch?v=ABC123]\n",
			want:   "<p>Intro</p>\n{{youtube:ABC123}}\n",
			counts: map[string]int{KindYouTube: 1},
		},
		{
			name:   "youtube block embed",
			in:     youtubeBlock,
			want:   "{{youtube:ABC123}}",
			counts: map[string]int{KindYouTube: 1},
		},
		{
			name:   "interim youtube iframe",
			in:     youtubeWrap,
			want:   "{{youtube:ABC123}}",
			counts: map[string]int{KindYouTube: 1},
		},
		{
			name:   "unresolvable youtube url passes through",
			in:     "[youtube https://example.com/video/1]",
			want:   "[youtube https://example.com/video/1]",
			counts: map[string]int{},
		},
		{
			name:   "raw podcast subscribe",
			in:     `<p>[podcast_subscribe id="2664"]</p>`,
			want:   "<p>{{podcast-subscribe:" + testShow + "}}</p>",
			counts: map[string]int{KindPodcastSubscribe: 1},
		},
		{
			name:   "interim podcast button",
			in:     podcastHTML,
			want:   "{{podcast-subscribe:" + testShow + "}}",
			counts: map[string]int{KindPodcastSubscribe: 1},
		},
		{
			name:   "raw audio with closing tag",
			in:     `[audio src="https://cdn.example.com/ep1.mp3"][/audio]`,
			want:   "{{audio:https://cdn.example.com/ep1.mp3}}",
			counts: map[string]int{KindAudio: 1},
		},
		{
			name:   "interim audio player",
			in:     audioHTML,
			want:   "{{audio:https://cdn.example.com/ep1.mp3}}",
			counts: map[string]int{KindAudio: 1},
		},
		{
			name:   "buzzsprout in paragraph",
			in:     "<p>[buzzsprout episode='123' player='true']</p>",
			want:   "{{audio:" + episodeURL + "}}",
			counts: map[string]int{KindAudio: 1},
		},
		{
			name:   "bare buzzsprout",
			in:     `Listen: [buzzsprout episode="123"]`,
			want:   "Listen: {{audio:" + episodeURL + "}}",
			counts: map[string]int{KindAudio: 1},
		},
		{
			name:   "raw tabs",
			in:     `[intense_tabs direction="right"][intense_tab title="One" border="3px"]First[/intense_tab][intense_tab title="Two"]Second[/intense_tab][/intense_tabs]`,
			want:   "{{tabs-start}}{{tab:One}}First{{/tab}}{{tab:Two}}Second{{/tab}}{{/tabs}}",
			counts: map[string]int{KindTabs: 1},
		},
		{
			name:   "interim tabs",
			in:     tabsHTML,
			want:   "<!-- wp:shortcode -->\n{{tabs-start}}\n{{tab:One}}\n<p>First</p>\n{{/tab}}\n{{tab:Two}}\n<p>Second</p>\n{{/tab}}{{/tabs}}",
			counts: map[string]int{KindTabs: 1},
		},
		{
			name:   "nested divs outside a tab group",
			in:     audioHTML + "\n" + calloutBlock,
			want:   "{{audio:https://cdn.example.com/ep1.mp3}}\n" + calloutBlock,
			counts: map[string]int{KindAudio: 1},
		},
		{
			name:   "tab group followed by another block",
			in:     tabsHTML + "\n" + calloutBlock,
			want:   "<!-- wp:shortcode -->\n{{tabs-start}}\n{{tab:One}}\n<p>First</p>\n{{/tab}}\n{{tab:Two}}\n<p>Second</p>\n{{/tab}}{{/tabs}}\n" + calloutBlock,
			counts: map[string]int{KindTabs: 1},
		},
	}

	p := newTestPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Transform(tt.in)
			if res.Content != tt.want {
				t.Errorf("Expected content %q, got %q", tt.want, res.Content)
			}
			for _, kind := range p.Kinds() {
				if res.Counts[kind] != tt.counts[kind] {
					t.Errorf("Expected %d %s, got %d", tt.counts[kind], kind, res.Counts[kind])
				}
			}
		})
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	mixed := "<p>Episode notes</p>\n" +
		`[podcast_subscribe id="1"]` + "\n" +
		youtubeBlock + "\n" +
		"[youtube https://youtu.be/XYZ789]\n" +
		"[youtube https://example.com/not-youtube]\n" +
		audioHTML + "\n" +
		"<p>[buzzsprout episode='99']</p>\n" +
		tabsHTML

	p := newTestPipeline()
	for _, in := range []string{mixed, podcastHTML, youtubeWrap, tabsHTML} {
		first := p.Transform(in)
		if !first.Changed {
			t.Fatalf("Expected first pass to change %q", in)
		}

		second := p.Transform(first.Content)
		if second.Content != first.Content {
			t.Errorf("Expected second pass to keep %q, got %q", first.Content, second.Content)
		}
		if second.Total() != 0 || second.Changed {
			t.Errorf("Expected no replacements on second pass, got %d", second.Total())
		}
	}
}

func TestTransformCanonicalIsNoop(t *testing.T) {
	in := "<p>Hi</p>\n{{podcast-subscribe:" + testShow + "}}\n{{youtube:ABC123}}\n" +
		"{{audio:https://cdn.example.com/a.mp3}}\n{{tabs-start}}{{tab:A}}x{{/tab}}{{/tabs}}"

	res := newTestPipeline().Transform(in)

	if res.Content != in {
		t.Errorf("Expected canonical content unchanged, got %q", res.Content)
	}
	if res.Total() != 0 {
		t.Errorf("Expected 0 replacements, got %d", res.Total())
	}
	if res.Source != Marker || !res.Source.Canonical() {
		t.Errorf("Expected canonical marker source, got %s", res.Source)
	}
}

func TestTransformPlainContent(t *testing.T) {
	in := "<p>Nothing to see [here]</p>"
	res := newTestPipeline().Transform(in)

	if res.Content != in {
		t.Errorf("Expected content unchanged, got %q", res.Content)
	}
	if res.Source != 0 || res.Source.String() != "plain" {
		t.Errorf("Expected plain source, got %s", res.Source)
	}
}

func TestTransformMissingShowIDLeavesPodcast(t *testing.T) {
	in := `[podcast_subscribe id="1"]`
	res := New(Options{}).Transform(in)

	if res.Content != in {
		t.Errorf("Expected content unchanged, got %q", res.Content)
	}
	if n := res.Counts[KindPodcastSubscribe]; n != 0 {
		t.Errorf("Expected 0 podcast replacements, got %d", n)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Representation
	}{
		{"raw", "[youtube https://youtu.be/a]", RawShortcode},
		{"interim", podcastHTML, InterimHTML},
		{"block", youtubeBlock, BlockEmbed},
		{"marker", "{{youtube:a}}", Marker},
		{"mixed", "{{youtube:a}} [intense_tabs]", RawShortcode | Marker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.in); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}

	mixed := RawShortcode | Marker
	if mixed.String() != "raw-shortcode+marker" {
		t.Errorf("Expected 'raw-shortcode+marker', got '%s'", mixed.String())
	}
	if mixed.Canonical() {
		t.Error("Expected mixed content not to be canonical")
	}
}

func TestInventory(t *testing.T) {
	inv := Inventory{}
	inv.Add(`[youtube x] [audio src="a"][/audio]`)
	inv.Add(`[youtube y] [caption id="3"]text[/caption]`)

	want := []Entry{
		{Name: "youtube", Count: 2},
		{Name: "audio", Count: 1},
		{Name: "caption", Count: 1},
	}
	if got := inv.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
