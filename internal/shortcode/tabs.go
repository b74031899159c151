package shortcode

import (
	"regexp"
	"strings"
)

// KindTabs is the stats key for tab groups; each group opener counts once.
const KindTabs = "intense_tabs"

const tabBody = `<div class="border-l-4 border-blue-600 pl-4">`

type tabRule struct {
	re     *regexp.Regexp
	with   string
	opens  bool
	titled bool
}

// Rules are order dependent: group openers before tab openers, closers last.
var (
	tabsRawRules = []tabRule{
		{re: regexp.MustCompile(`\[intense_tabs[^\]]*\]`), with: "{{tabs-start}}", opens: true},
		{re: regexp.MustCompile(`\[intense_tab\s+title="([^"]+)"[^\]]*\]`), with: "{{tab:$1}}", titled: true},
		{re: regexp.MustCompile(`\[/intense_tab\]`), with: "{{/tab}}"},
		{re: regexp.MustCompile(`\[/intense_tabs\]`), with: "{{/tabs}}"},
	}
	tabsHTMLRules = []tabRule{
		{re: regexp.MustCompile(`<div class="my-6 space-y-4">`), with: "{{tabs-start}}", opens: true},
		{re: regexp.MustCompile(`<div class="border-l-4 border-blue-600 pl-4"><h3 class="text-lg font-semibold mb-2">([^<]+)</h3>`), with: "{{tab:$1}}", titled: true},
		{re: regexp.MustCompile(`</div>\s*<div class="border-l-4 border-blue-600 pl-4">`), with: "{{/tab}}\n" + tabBody},
		{re: regexp.MustCompile(`</div>\s*</div>\s*<!-- /wp:shortcode -->`), with: "{{/tab}}{{/tabs}}"},
	}
	// an interim group runs from its container div to the end of the
	// shortcode block; the HTML rules only apply inside it
	tabsGroupRe = regexp.MustCompile(`(?s)<div class="my-6 space-y-4">.*?(?:<!-- /wp:shortcode -->|\z)`)
	// leftover closing div in front of a tab marker from a partial rewrite
	tabCleanupRule = tabRule{re: regexp.MustCompile(`</div>\s*\n\s*(\{\{tab:)`), with: "{{/tab}}\n$1"}
)

// Tabs rewrites intense_tabs groups and their interim HTML to
// {{tabs-start}} {{tab:Title}} ... {{/tab}} {{/tabs}}.
type Tabs struct{}

func (Tabs) Kind() string { return KindTabs }

func (Tabs) Rewrite(content string, rep Representation) (string, int) {
	var groups, n int

	if rep.Has(RawShortcode) {
		content, n = applyRules(content, tabsRawRules)
		groups += n
	}
	if rep.Has(InterimHTML) {
		content = tabsGroupRe.ReplaceAllStringFunc(content, func(group string) string {
			group, n = applyRules(group, tabsHTMLRules)
			groups += n
			return group
		})
	}
	content, _ = tabCleanupRule.apply(content)

	return content, groups
}

// applyRules runs rules in order and returns the number of group openers
// rewritten.
func applyRules(content string, rules []tabRule) (string, int) {
	var groups int
	for _, r := range rules {
		var n int
		content, n = r.apply(content)
		if r.opens {
			groups += n
		}
	}
	return content, groups
}

func (r tabRule) apply(content string) (string, int) {
	return replace(r.re, content, func(g []string) (string, bool) {
		if len(g) < 2 {
			return r.with, true
		}
		if r.titled && !safePayload(g[1]) {
			return "", false
		}
		return strings.Replace(r.with, "$1", g[1], 1), true
	})
}
