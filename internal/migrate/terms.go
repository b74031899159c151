package migrate

import (
	"context"
	"fmt"
	"sort"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/mappers"
	"wp2strapi/internal/report"
	"wp2strapi/internal/strapi"
)

// PurgeResult counts deleted taxonomy entries.
type PurgeResult struct {
	Categories int
	Tags       int
	Failed     int
}

// PurgeTerms deletes every category and tag.
func (m *Migrator) PurgeTerms(ctx context.Context) (PurgeResult, error) {
	var res PurgeResult

	cats, err := m.cms.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: purge: %w", err)
	}
	tags, err := m.cms.ListTags(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: purge: %w", err)
	}
	m.printf("   Deleting %d categories and %d tags...\n", len(cats), len(tags))

	for _, c := range cats {
		if m.cms.DeleteCategory(ctx, c.Ref()) {
			res.Categories++
		} else {
			res.Failed++
		}
	}
	for _, t := range tags {
		if m.cms.DeleteTag(ctx, t.Ref()) {
			res.Tags++
		} else {
			res.Failed++
		}
	}
	return res, nil
}

// TermsResult tallies created categories and tags.
type TermsResult struct {
	Categories report.Tally
	Tags       report.Tally
}

// CreateTerms creates categories and tags in slug order.
func (m *Migrator) CreateTerms(ctx context.Context, cats, tags map[string]domain.TermRef) TermsResult {
	var res TermsResult

	m.printf("\nCreating %d categories...\n", len(cats))
	for _, ref := range sortedRefs(cats) {
		_, ok := m.cms.CreateCategory(ctx, mappers.TermToStrapi(ref))
		res.Categories.Add(ok, ref.Name)
	}
	m.printf("   Categories: %s\n", res.Categories)

	m.printf("\nCreating %d tags...\n", len(tags))
	for _, ref := range sortedRefs(tags) {
		_, ok := m.cms.CreateTag(ctx, mappers.TermToStrapi(ref))
		res.Tags.Add(ok, ref.Name)
	}
	m.printf("   Tags: %s\n", res.Tags)

	return res
}

func sortedRefs(in map[string]domain.TermRef) []domain.TermRef {
	out := make([]domain.TermRef, 0, len(in))
	for _, ref := range in {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// LinkResult counts what Link did per WordPress post.
type LinkResult struct {
	Total         int
	Updated       int
	AlreadyLinked int
	// Skipped posts have no category or tag that exists in Strapi.
	Skipped  int
	NotFound int
	Failed   int
}

// Link points each migrated post at its categories and tags, matching posts
// by wpPostId and terms by slug.
func (m *Migrator) Link(ctx context.Context, all []domain.Post) (LinkResult, error) {
	var res LinkResult

	cats, err := m.cms.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: link: %w", err)
	}
	tags, err := m.cms.ListTags(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: link: %w", err)
	}
	entries, err := m.cms.ListPosts(ctx, strapi.Query{Populate: []string{"categories", "tags"}})
	if err != nil {
		return res, fmt.Errorf("migrate: link: %w", err)
	}

	catBySlug, tagBySlug := bySlug(cats), bySlug(tags)
	byWPID := make(map[int]strapi.Entry, len(entries))
	for _, e := range entries {
		if e.WPPostID != 0 {
			byWPID[e.WPPostID] = e
		}
	}
	m.printf("   Found %d categories, %d tags, %d posts in Strapi\n", len(cats), len(tags), len(entries))

	posts, _ := domain.SplitByType(all)
	res.Total = len(posts)

	for i, p := range posts {
		if ctx.Err() != nil {
			break
		}
		entry, ok := byWPID[p.ID]
		if !ok {
			m.printf("   [%d/%d] post %d not found in Strapi\n", i+1, len(posts), p.ID)
			res.NotFound++
			continue
		}

		catKeys, catSlugs := resolve(p.Categories, catBySlug)
		tagKeys, tagSlugs := resolve(p.Tags, tagBySlug)
		if len(catKeys) == 0 && len(tagKeys) == 0 {
			res.Skipped++
			continue
		}
		if linked(entry.Categories, catSlugs) && linked(entry.Tags, tagSlugs) {
			res.AlreadyLinked++
			continue
		}

		m.printf("   [%d/%d] %s\n", i+1, len(posts), truncate(p.Title, 50))
		if _, ok := m.cms.UpdatePost(ctx, entry.Ref(), strapi.RelationsInput{Categories: catKeys, Tags: tagKeys}); ok {
			res.Updated++
			m.printf("      linked: %d categories, %d tags\n", len(catKeys), len(tagKeys))
		} else {
			res.Failed++
		}
	}

	return res, nil
}

func bySlug(entries []strapi.Entry) map[string]strapi.Entry {
	out := make(map[string]strapi.Entry, len(entries))
	for _, e := range entries {
		if e.Slug != "" {
			out[e.Slug] = e
		}
	}
	return out
}

// resolve maps WordPress term refs onto existing Strapi entries. Terms with
// no Strapi counterpart are dropped.
func resolve(refs []domain.TermRef, index map[string]strapi.Entry) (keys []any, slugs []string) {
	seen := map[string]bool{}
	for _, ref := range refs {
		slug := mappers.TermSlug(ref)
		e, ok := index[slug]
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		keys = append(keys, e.RelationKey())
		slugs = append(slugs, slug)
	}
	return keys, slugs
}

// linked reports whether current already holds exactly want. An empty want
// is not sent in the update, so it always counts as linked.
func linked(current strapi.Relations, want []string) bool {
	if len(want) == 0 {
		return true
	}
	have := current.Slugs()
	if len(have) != len(want) {
		return false
	}
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[s] = true
	}
	for _, s := range want {
		if !set[s] {
			return false
		}
	}
	return true
}
