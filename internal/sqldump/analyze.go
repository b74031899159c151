package sqldump

import (
	"regexp"
	"sort"

	"wp2strapi/internal/domain"
)

var tableRe = regexp.MustCompile("CREATE TABLE (?:IF NOT EXISTS )?`(\\w+)`")

// Analysis summarizes a dump before migrating it.
type Analysis struct {
	Prefix          string
	Tables          []string
	PublishedByType map[string]int // post_type -> count, publish only
	ByStatus        map[string]int // post_status -> count, every row
	TotalPublished  int
	TermStatements  int
	SizeMB          float64
}

// Analyze walks the posts table once, without the publish/type filter, and
// counts term INSERT statements.
func (e *Extractor) Analyze() Analysis {
	a := Analysis{
		Prefix:          e.prefix,
		PublishedByType: map[string]int{},
		ByStatus:        map[string]int{},
		SizeMB:          float64(len(e.content)) / (1024 * 1024),
	}

	for _, m := range tableRe.FindAllStringSubmatch(e.content, -1) {
		a.Tables = append(a.Tables, m[1])
	}

	b := e.posts
	for _, stmt := range insertStatements(e.content, e.prefix+b.table) {
		for _, row := range rowTuples(stmt) {
			fields := SplitRow(row)
			if !b.fits(fields) {
				continue
			}
			status := b.get(fields, "post_status")
			a.ByStatus[status]++
			if status == domain.StatusPublish {
				a.PublishedByType[b.get(fields, "post_type")]++
				a.TotalPublished++
			}
		}
	}

	a.TermStatements = len(insertStatements(e.content, e.prefix+e.terms.table))
	return a
}

// Count is one entry of a frequency table.
type Count struct {
	Key string
	N   int
}

// SortedCounts orders a frequency map by count descending, then key.
func SortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}
