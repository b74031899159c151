package sqldump

import (
	"fmt"
	"strings"
)

// Schema declares the column order of a WordPress table as it appears in
// INSERT statements. Rows are mapped by name through a binding, so a column
// list that drifts from what the extractor needs fails at construction time
// instead of silently mis-mapping fields.
type Schema struct {
	Table   string // table name without prefix
	Columns []string
}

// PostsSchema is the wp_posts column order (WordPress 4.4+, 23 columns).
var PostsSchema = Schema{
	Table: "posts",
	Columns: []string{
		"ID",
		"post_author",
		"post_date",
		"post_date_gmt",
		"post_content",
		"post_title",
		"post_excerpt",
		"post_status",
		"comment_status",
		"ping_status",
		"post_password",
		"post_name",
		"to_ping",
		"pinged",
		"post_modified",
		"post_modified_gmt",
		"post_content_filtered",
		"post_parent",
		"guid",
		"menu_order",
		"post_type",
		"post_mime_type",
		"comment_count",
	},
}

// TermsSchema is the leading wp_terms columns. The trailing term_group column
// is unused, so rows only need these three.
var TermsSchema = Schema{
	Table:   "terms",
	Columns: []string{"term_id", "name", "slug"},
}

var postColumns = []string{
	"ID", "post_author", "post_date", "post_date_gmt", "post_content", "post_title",
	"post_excerpt", "post_status", "post_name", "post_type",
}

var termColumns = []string{"term_id", "name", "slug"}

// binding resolves column names to positions once per schema.
type binding struct {
	table    string
	index    map[string]int
	minWidth int // rows shorter than this are skipped
}

// Bind validates that the schema has unique, non-empty column names and that
// every required column is present.
func (s Schema) Bind(required ...string) (binding, error) {
	if strings.TrimSpace(s.Table) == "" {
		return binding{}, fmt.Errorf("sqldump: schema has no table name")
	}
	if len(s.Columns) == 0 {
		return binding{}, fmt.Errorf("sqldump: schema %s has no columns", s.Table)
	}

	idx := make(map[string]int, len(s.Columns))
	for i, c := range s.Columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return binding{}, fmt.Errorf("sqldump: schema %s: empty column name at position %d", s.Table, i)
		}
		if _, dup := idx[name]; dup {
			return binding{}, fmt.Errorf("sqldump: schema %s: duplicate column %q", s.Table, name)
		}
		idx[name] = i
	}

	for _, r := range required {
		if _, ok := idx[r]; !ok {
			return binding{}, fmt.Errorf("sqldump: schema %s: missing required column %q", s.Table, r)
		}
	}

	return binding{table: s.Table, index: idx, minWidth: len(s.Columns)}, nil
}

// get returns the named field of a tokenized row. The column must have been
// required at Bind time and the row must be at least minWidth long.
func (b binding) get(row []string, column string) string {
	return row[b.index[column]]
}

func (b binding) fits(row []string) bool {
	return len(row) >= b.minWidth
}
