package sqldump

import (
	"fmt"
	"os"
	"regexp"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/htmlclean"
)

// DefaultPrefix is used when the dump has no CREATE TABLE for a posts table.
const DefaultPrefix = "wp_"

var (
	prefixRe = regexp.MustCompile("CREATE TABLE (?:IF NOT EXISTS )?`(\\w+_)posts`")
	valuesRe = regexp.MustCompile(`(?i)\bVALUES\b`)
)

// ScanStats reports what one extraction pass saw.
type ScanStats struct {
	Statements int // INSERT statements for the table
	Rows       int // tuples matched inside those statements
	Accepted   int // rows turned into records
}

// Extractor recovers posts, pages and terms from a WordPress SQL dump without
// a SQL parser. It only understands INSERT INTO statements for the posts and
// terms tables.
type Extractor struct {
	content string
	prefix  string
	posts   binding
	terms   binding
}

// Open reads a dump from disk.
func Open(path string) (*Extractor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sqldump: read %s: %w", path, err)
	}
	return New(string(b))
}

// New prepares an extractor over dump text using the default WordPress schemas.
func New(content string) (*Extractor, error) {
	return NewWithSchemas(content, PostsSchema, TermsSchema)
}

// NewWithSchemas prepares an extractor with explicit column layouts. Both
// schemas are validated here, once.
func NewWithSchemas(content string, posts, terms Schema) (*Extractor, error) {
	pb, err := posts.Bind(postColumns...)
	if err != nil {
		return nil, err
	}
	tb, err := terms.Bind(termColumns...)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		content: content,
		prefix:  DetectPrefix(content),
		posts:   pb,
		terms:   tb,
	}, nil
}

// Name identifies the source in logs and reports.
func (e *Extractor) Name() string { return "sql" }

// Prefix is the detected table prefix, e.g. "wp_".
func (e *Extractor) Prefix() string { return e.prefix }

// Size is the dump length in bytes.
func (e *Extractor) Size() int { return len(e.content) }

// DetectPrefix finds the table prefix from the posts table's CREATE TABLE
// statement, falling back to DefaultPrefix.
func DetectPrefix(content string) string {
	m := prefixRe.FindStringSubmatch(content)
	if m == nil {
		return DefaultPrefix
	}
	return m[1]
}

// Posts returns published posts and pages.
func (e *Extractor) Posts() ([]domain.Post, error) {
	posts, _ := e.ScanPosts()
	return posts, nil
}

// ScanPosts is Posts plus the statement/row counts for reporting.
// A row becomes a record only if it is at least as wide as the schema, its
// status is "publish" and its type is "post" or "page".
func (e *Extractor) ScanPosts() ([]domain.Post, ScanStats) {
	var (
		stats ScanStats
		out   []domain.Post
	)

	b := e.posts
	for _, stmt := range insertStatements(e.content, e.prefix+b.table) {
		stats.Statements++
		for _, row := range rowTuples(stmt) {
			stats.Rows++

			fields := SplitRow(row)
			if !b.fits(fields) {
				continue
			}

			status := b.get(fields, "post_status")
			postType := b.get(fields, "post_type")
			if status != domain.StatusPublish || !domain.IsMigratable(postType) {
				continue
			}

			out = append(out, domain.Post{
				ID:      ParseID(b.get(fields, "ID")),
				Author:  OrEmpty(b.get(fields, "post_author")),
				Date:    OrEmpty(b.get(fields, "post_date")),
				DateGMT: OrEmpty(b.get(fields, "post_date_gmt")),
				Content: htmlclean.Clean(b.get(fields, "post_content")),
				Title:   htmlclean.Text(b.get(fields, "post_title")),
				Excerpt: htmlclean.Text(b.get(fields, "post_excerpt")),
				Status:  status,
				Slug:    OrEmpty(b.get(fields, "post_name")),
				Type:    domain.PostType(postType),
			})
		}
	}

	stats.Accepted = len(out)
	return out, stats
}

// Terms returns every row of the terms table as a category. Telling
// categories from tags needs the term_taxonomy join, which this extractor does
// not do, so the result is marked Approximate.
func (e *Extractor) Terms() (domain.Terms, error) {
	terms, _ := e.ScanTerms()
	return terms, nil
}

// ScanTerms is Terms plus counts for reporting.
func (e *Extractor) ScanTerms() (domain.Terms, ScanStats) {
	var stats ScanStats
	out := domain.Terms{Approximate: true}

	b := e.terms
	for _, stmt := range insertStatements(e.content, e.prefix+b.table) {
		stats.Statements++
		for _, row := range rowTuples(stmt) {
			stats.Rows++

			fields := SplitRow(row)
			if !b.fits(fields) {
				continue
			}
			out.Categories = append(out.Categories, domain.Term{
				ID:   ParseID(b.get(fields, "term_id")),
				Name: htmlclean.Text(b.get(fields, "name")),
				Slug: OrEmpty(b.get(fields, "slug")),
			})
		}
	}

	stats.Accepted = len(out.Categories)
	return out, stats
}

// insertStatements returns every "INSERT INTO `table` ... ;" span. The end of
// a statement is the first semicolon outside a quoted string, so entities
// such as &amp; inside post content do not cut a statement short.
func insertStatements(content, table string) []string {
	startRe := regexp.MustCompile("INSERT INTO `?" + regexp.QuoteMeta(table) + "`?[\\s(]")

	var (
		out     []string
		lastEnd int
	)
	for _, loc := range startRe.FindAllStringIndex(content, -1) {
		// A match inside the previous statement is quoted data, not SQL.
		if loc[0] < lastEnd {
			continue
		}
		end := statementEnd(content, loc[1])
		if end < 0 {
			break
		}
		out = append(out, content[loc[0]:end+1])
		lastEnd = end + 1
	}
	return out
}

// statementEnd returns the index of the first unquoted ';' at or after from,
// or -1 when the statement never terminates.
func statementEnd(content string, from int) int {
	end := -1
	scanUnquoted(content, from, func(i int, c byte) bool {
		if c == ';' {
			end = i
			return false
		}
		return true
	})
	return end
}

// scanUnquoted calls fn for every byte at or after from that is outside a
// single-quoted string, until fn returns false. Backslash escapes the next
// byte.
func scanUnquoted(s string, from int, fn func(i int, c byte) bool) {
	inQuotes := false
	escapeNext := false
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case escapeNext:
			escapeNext = false
		case c == '\\':
			escapeNext = true
		case c == '\'':
			inQuotes = !inQuotes
		case !inQuotes:
			if !fn(i, c) {
				return
			}
		}
	}
}

// rowTuples returns the inside of every value tuple in one statement.
// Parentheses inside quoted values do not count, and unquoted ones nest.
func rowTuples(stmt string) []string {
	loc := valuesRe.FindStringIndex(stmt)
	if loc == nil {
		return nil
	}

	var (
		out   []string
		depth int
		start int
	)
	scanUnquoted(stmt, loc[1], func(i int, c byte) bool {
		switch c {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if depth == 0 {
				break
			}
			depth--
			if depth == 0 {
				out = append(out, stmt[start:i])
			}
		case ';':
			return false
		}
		return true
	})
	return out
}
