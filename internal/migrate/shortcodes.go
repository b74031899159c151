package migrate

import (
	"context"
	"fmt"

	"wp2strapi/internal/shortcode"
	"wp2strapi/internal/strapi"
)

// ShortcodeOptions select the posts to rewrite and whether to write back.
type ShortcodeOptions struct {
	Execute    bool
	SlugPrefix string
}

// ShortcodeStats totals a rewrite run. Counts is keyed by pass kind.
type ShortcodeStats struct {
	Processed int
	Modified  int
	Failed    int
	Skipped   int
	Counts    map[string]int
}

// Shortcodes runs the rewrite pipeline over Strapi posts. Without Execute it
// only reports what would change.
func (m *Migrator) Shortcodes(ctx context.Context, p *shortcode.Pipeline, opts ShortcodeOptions) (ShortcodeStats, error) {
	stats := ShortcodeStats{Counts: map[string]int{}}
	for _, kind := range p.Kinds() {
		stats.Counts[kind] = 0
	}

	posts, err := m.cms.ListPosts(ctx, strapi.Query{SlugPrefix: opts.SlugPrefix})
	if err != nil {
		return stats, fmt.Errorf("migrate: shortcodes: %w", err)
	}
	m.printf("   Found %d posts\n", len(posts))

	for i, post := range posts {
		if ctx.Err() != nil {
			break
		}
		if post.ID == 0 && post.DocumentID == "" {
			m.printf("\n[%d/%d] skipping post without id\n", i+1, len(posts))
			stats.Skipped++
			continue
		}
		stats.Processed++

		res := p.Transform(post.Content)
		if !res.Changed {
			continue
		}

		m.printf("\n[%d/%d] %s (%s)\n", i+1, len(posts), post.Label(), res.Source)
		for _, kind := range p.Kinds() {
			if n := res.Counts[kind]; n > 0 {
				m.printf("     - %s: %d replacement(s)\n", kind, n)
				stats.Counts[kind] += n
			}
		}

		if !opts.Execute {
			stats.Modified++
			continue
		}
		if _, ok := m.cms.UpdatePost(ctx, post.Ref(), strapi.ContentInput{Content: res.Content}); ok {
			m.printf("   updated\n")
			stats.Modified++
		} else {
			m.printf("   update failed\n")
			stats.Failed++
		}
	}

	return stats, nil
}

// Inventory counts the shortcodes still present in Strapi posts.
func (m *Migrator) Inventory(ctx context.Context, slugPrefix string) (shortcode.Inventory, int, error) {
	posts, err := m.cms.ListPosts(ctx, strapi.Query{SlugPrefix: slugPrefix})
	if err != nil {
		return nil, 0, fmt.Errorf("migrate: inventory: %w", err)
	}

	inv := shortcode.Inventory{}
	for _, post := range posts {
		inv.Add(post.Content)
	}
	return inv, len(posts), nil
}
