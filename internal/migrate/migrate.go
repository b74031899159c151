// Package migrate sequences extraction results into Strapi writes. Every
// remote failure is counted against the item and the loop moves on.
package migrate

import (
	"context"
	"fmt"
	"io"

	"wp2strapi/internal/logging"
	"wp2strapi/internal/strapi"
)

// CMS is the part of the Strapi client the orchestrators call.
type CMS interface {
	ListPosts(ctx context.Context, q strapi.Query) ([]strapi.Entry, error)
	ListPages(ctx context.Context) ([]strapi.Entry, error)
	ListCategories(ctx context.Context) ([]strapi.Entry, error)
	ListTags(ctx context.Context) ([]strapi.Entry, error)

	CreatePost(ctx context.Context, in strapi.PostInput) (*strapi.Entry, bool)
	CreatePage(ctx context.Context, in strapi.PageInput) (*strapi.Entry, bool)
	CreateCategory(ctx context.Context, in strapi.TermInput) (*strapi.Entry, bool)
	CreateTag(ctx context.Context, in strapi.TermInput) (*strapi.Entry, bool)

	UpdatePost(ctx context.Context, ref string, data any) (*strapi.Entry, bool)
	DeleteCategory(ctx context.Context, ref string) bool
	DeleteTag(ctx context.Context, ref string) bool
}

var _ CMS = (*strapi.Client)(nil)

// maxListedFailures bounds the failed titles echoed to the console.
const maxListedFailures = 5

// Migrator runs the orchestration steps. Out receives the progress lines.
type Migrator struct {
	cms CMS
	out io.Writer
	log logging.Logger
}

func New(cms CMS, out io.Writer, log logging.Logger) *Migrator {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Migrator{cms: cms, out: out, log: log}
}

func (m *Migrator) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Migrator) listFailures(failed []string) {
	for i, title := range failed {
		if i == maxListedFailures {
			m.printf("      ... and %d more\n", len(failed)-maxListedFailures)
			return
		}
		m.printf("      - %s\n", title)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
