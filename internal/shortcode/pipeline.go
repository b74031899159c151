// Package shortcode rewrites legacy WordPress shortcodes, block embeds and
// interim HTML into the {{kind:payload}} markers the frontend renders.
//
// Every pass is idempotent: running a pipeline over its own output returns
// the same content with zero counts.
package shortcode

// Options carry the show identifiers the markers resolve to.
type Options struct {
	SpotifyShowID    string
	BuzzsproutShowID string
}

// Result is the outcome of one content item.
type Result struct {
	Content string
	Source  Representation
	Counts  map[string]int
	// Changed is set when Content differs from the input.
	Changed bool
}

// Total is the sum of all pass counts.
func (r Result) Total() int {
	var n int
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Pipeline runs passes in a fixed order.
type Pipeline struct {
	passes []Pass
}

// New returns the standard pipeline: podcast, youtube, audio, tabs.
func New(opts Options) *Pipeline {
	return NewWithPasses(
		PodcastSubscribe{ShowID: opts.SpotifyShowID},
		YouTube{},
		Audio{BuzzsproutShowID: opts.BuzzsproutShowID},
		Tabs{},
	)
}

func NewWithPasses(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// Kinds lists the stats keys in pass order.
func (p *Pipeline) Kinds() []string {
	kinds := make([]string, 0, len(p.passes))
	for _, pass := range p.passes {
		kinds = append(kinds, pass.Kind())
	}
	return kinds
}

// Transform detects the representations in content once and runs every
// pass against that set.
func (p *Pipeline) Transform(content string) Result {
	res := Result{
		Source: Detect(content),
		Counts: make(map[string]int, len(p.passes)),
	}

	out := content
	for _, pass := range p.passes {
		var n int
		out, n = pass.Rewrite(out, res.Source)
		res.Counts[pass.Kind()] += n
	}
	res.Content = out
	res.Changed = out != content

	return res
}
