package migrate

import (
	"context"
	"time"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/mappers"
	"wp2strapi/internal/report"
	"wp2strapi/internal/strapi"
)

// Content creates every post, then every page, one request at a time.
func (m *Migrator) Content(ctx context.Context, source string, all []domain.Post) report.Migration {
	posts, pages := domain.SplitByType(all)

	rep := report.Migration{
		RunID:     report.NewRunID(),
		Source:    source,
		Generated: time.Now(),
	}
	m.log.Info("migrating content", "run", rep.RunID, "source", source, "posts", len(posts), "pages", len(pages))

	m.printf("\nMigrating %d posts...\n", len(posts))
	for i, p := range posts {
		if ctx.Err() != nil {
			break
		}
		m.printf("   [%d/%d] Migrating: %s\n", i+1, len(posts), truncate(p.Title, 60))

		entry, ok := m.cms.CreatePost(ctx, mappers.PostToStrapi(p))
		rep.Posts.Add(ok, p.Title)
		rep.Outcomes = append(rep.Outcomes, outcome(p, entry, ok))
		if ok {
			m.printf("      ok (id %d)\n", entry.ID)
		}
	}
	m.printf("\n   Migrated %s posts\n", rep.Posts)
	if len(rep.Posts.Failed) > 0 {
		m.printf("   Failed posts (%d):\n", len(rep.Posts.Failed))
		m.listFailures(rep.Posts.Failed)
	}

	if len(pages) == 0 {
		return rep
	}

	m.printf("\nMigrating %d pages...\n", len(pages))
	for i, p := range pages {
		if ctx.Err() != nil {
			break
		}
		m.printf("   [%d/%d] Migrating: %s\n", i+1, len(pages), truncate(p.Title, 60))

		entry, ok := m.cms.CreatePage(ctx, mappers.PageToStrapi(p))
		rep.Pages.Add(ok, p.Title)
		rep.Outcomes = append(rep.Outcomes, outcome(p, entry, ok))
		if ok {
			m.printf("      ok (id %d)\n", entry.ID)
		}
	}
	m.printf("\n   Migrated %s pages\n", rep.Pages)
	if len(rep.Pages.Failed) > 0 {
		m.printf("   Failed pages (%d):\n", len(rep.Pages.Failed))
		m.listFailures(rep.Pages.Failed)
	}

	return rep
}

func outcome(p domain.Post, e *strapi.Entry, ok bool) report.Outcome {
	o := report.Outcome{
		Type:  string(p.Type),
		WPID:  p.ID,
		Title: p.Title,
		Slug:  p.Slug,
		OK:    ok,
	}
	if e != nil {
		o.Ref = e.Ref()
		if e.Slug != "" {
			o.Slug = e.Slug
		}
	}
	return o
}

// Verification compares what Strapi holds with what was created.
type Verification struct {
	Posts  int
	Pages  int
	Passed bool
}

// Verify lists posts and pages and passes when Strapi holds at least as many
// as this run created.
func (m *Migrator) Verify(ctx context.Context, rep report.Migration) (Verification, error) {
	posts, err := m.cms.ListPosts(ctx, strapi.Query{})
	if err != nil {
		return Verification{}, err
	}
	pages, err := m.cms.ListPages(ctx)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{Posts: len(posts), Pages: len(pages)}
	v.Passed = v.Posts >= rep.Posts.Succeeded && v.Pages >= rep.Pages.Succeeded
	return v, nil
}
