// Package report writes the migration report files.
package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const rule = "======================================================================"

// NewRunID returns a sortable id that tags one migration run.
func NewRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
}

// Tally counts the outcomes of one content type.
type Tally struct {
	Total     int
	Succeeded int
	Failed    []string
}

// Add records one attempt; title is kept when it failed.
func (t *Tally) Add(ok bool, title string) {
	t.Total++
	if ok {
		t.Succeeded++
		return
	}
	t.Failed = append(t.Failed, title)
}

func (t Tally) String() string {
	return fmt.Sprintf("%d/%d successful", t.Succeeded, t.Total)
}

// Migration is the report of one content migration run.
type Migration struct {
	RunID     string
	Source    string
	Generated time.Time
	Posts     Tally
	Pages     Tally
	Outcomes  []Outcome
}

// WriteText writes the plain-text report.
func WriteText(w io.Writer, m Migration) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Migration Report (%s) - %s\n", strings.ToUpper(m.Source), m.Generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n", rule)
	if m.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", m.RunID)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Posts: %s\n", m.Posts)
	if m.Pages.Total > 0 {
		fmt.Fprintf(&b, "Pages: %s\n", m.Pages)
	}
	writeList(&b, "Failed Posts", m.Posts.Failed)
	if m.Pages.Total > 0 {
		writeList(&b, "Failed Pages", m.Pages.Failed)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

// Save writes migration-report-<source>.txt and migration-outcomes-<source>.csv
// into dir and returns their paths.
func Save(dir string, m Migration) (textPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("report: %w", err)
	}

	source := strings.ToLower(m.Source)
	textPath = filepath.Join(dir, "migration-report-"+source+".txt")
	csvPath = filepath.Join(dir, "migration-outcomes-"+source+".csv")

	if err := writeFile(textPath, func(w io.Writer) error { return WriteText(w, m) }); err != nil {
		return "", "", err
	}
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, m.Outcomes) }); err != nil {
		return textPath, "", err
	}
	return textPath, csvPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}
