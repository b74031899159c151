package shortcode

import (
	"regexp"
	"sort"
)

var anyShortcodeRe = regexp.MustCompile(`\[([a-zA-Z_][a-zA-Z0-9_]*)[^\]]*\]`)

// Inventory counts opening shortcodes by name across content items.
type Inventory map[string]int

// Add tallies the shortcodes found in content.
func (inv Inventory) Add(content string) {
	for _, m := range anyShortcodeRe.FindAllStringSubmatch(content, -1) {
		inv[m[1]]++
	}
}

// Entry is one inventory line.
type Entry struct {
	Name  string
	Count int
}

// Sorted returns entries by count descending, then name.
func (inv Inventory) Sorted() []Entry {
	out := make([]Entry, 0, len(inv))
	for name, n := range inv {
		out = append(out, Entry{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
