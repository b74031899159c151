package migrate

import (
	"context"
	"fmt"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/strapi"
)

// Diff splits WordPress records into the ones Strapi does not hold yet and
// the ones already migrated, matching posts on wpPostId and pages on
// wpPageId.
func Diff(all []domain.Post, posts, pages []strapi.Entry) (missing []domain.Post, present []domain.Post) {
	havePost := map[int]bool{}
	for _, e := range posts {
		if e.WPPostID != 0 {
			havePost[e.WPPostID] = true
		}
	}
	havePage := map[int]bool{}
	for _, e := range pages {
		if e.WPPageID != 0 {
			havePage[e.WPPageID] = true
		}
	}

	for _, p := range all {
		var found bool
		switch p.Type {
		case domain.TypePost:
			found = havePost[p.ID]
		case domain.TypePage:
			found = havePage[p.ID]
		}
		if found {
			present = append(present, p)
		} else {
			missing = append(missing, p)
		}
	}
	return missing, present
}

// Missing lists Strapi posts and pages and returns the records of all that
// still need to be created.
func (m *Migrator) Missing(ctx context.Context, all []domain.Post) ([]domain.Post, error) {
	posts, err := m.cms.ListPosts(ctx, strapi.Query{})
	if err != nil {
		return nil, fmt.Errorf("migrate: diff: %w", err)
	}
	pages, err := m.cms.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: diff: %w", err)
	}

	missing, present := Diff(all, posts, pages)
	m.log.Info("resume", "already_migrated", len(present), "remaining", len(missing))
	m.printf("   %d already in Strapi, %d remaining\n", len(present), len(missing))
	return missing, nil
}
