package migrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/strapi"
)

// fakeCMS keeps collections in memory and records updates.
type fakeCMS struct {
	nextID     int
	posts      []strapi.Entry
	pages      []strapi.Entry
	categories []strapi.Entry
	tags       []strapi.Entry

	failTitles map[string]bool
	failSlugs  map[string]bool
	listErr    error
	updates    map[string]any
	lastQuery  strapi.Query
}

func newFakeCMS() *fakeCMS {
	return &fakeCMS{
		nextID:     100,
		failTitles: map[string]bool{},
		failSlugs:  map[string]bool{},
		updates:    map[string]any{},
	}
}

func (f *fakeCMS) id() (int, string) {
	f.nextID++
	return f.nextID, fmt.Sprintf("doc%d", f.nextID)
}

func (f *fakeCMS) ListPosts(_ context.Context, q strapi.Query) ([]strapi.Entry, error) {
	f.lastQuery = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []strapi.Entry
	for _, p := range f.posts {
		if strings.HasPrefix(p.Slug, q.SlugPrefix) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCMS) ListPages(context.Context) ([]strapi.Entry, error) { return f.pages, f.listErr }
func (f *fakeCMS) ListCategories(context.Context) ([]strapi.Entry, error) {
	return append([]strapi.Entry(nil), f.categories...), f.listErr
}
func (f *fakeCMS) ListTags(context.Context) ([]strapi.Entry, error) {
	return append([]strapi.Entry(nil), f.tags...), f.listErr
}

func (f *fakeCMS) CreatePost(_ context.Context, in strapi.PostInput) (*strapi.Entry, bool) {
	if f.failTitles[in.Title] {
		return nil, false
	}
	id, doc := f.id()
	e := strapi.Entry{ID: id, DocumentID: doc, Title: in.Title, Slug: in.Slug, Content: in.Content, WPPostID: in.WPPostID}
	f.posts = append(f.posts, e)
	return &e, true
}

func (f *fakeCMS) CreatePage(_ context.Context, in strapi.PageInput) (*strapi.Entry, bool) {
	if f.failTitles[in.Title] {
		return nil, false
	}
	id, doc := f.id()
	e := strapi.Entry{ID: id, DocumentID: doc, Title: in.Title, Slug: in.Slug, WPPageID: in.WPPageID}
	f.pages = append(f.pages, e)
	return &e, true
}

func (f *fakeCMS) createTerm(list *[]strapi.Entry, in strapi.TermInput) (*strapi.Entry, bool) {
	if f.failSlugs[in.Slug] {
		return nil, false
	}
	id, doc := f.id()
	e := strapi.Entry{ID: id, DocumentID: doc, Name: in.Name, Slug: in.Slug}
	*list = append(*list, e)
	return &e, true
}

func (f *fakeCMS) CreateCategory(_ context.Context, in strapi.TermInput) (*strapi.Entry, bool) {
	return f.createTerm(&f.categories, in)
}

func (f *fakeCMS) CreateTag(_ context.Context, in strapi.TermInput) (*strapi.Entry, bool) {
	return f.createTerm(&f.tags, in)
}

func (f *fakeCMS) UpdatePost(_ context.Context, ref string, data any) (*strapi.Entry, bool) {
	if f.failSlugs[ref] {
		return nil, false
	}
	f.updates[ref] = data
	for i := range f.posts {
		if f.posts[i].Ref() != ref {
			continue
		}
		if c, ok := data.(strapi.ContentInput); ok {
			f.posts[i].Content = c.Content
		}
		e := f.posts[i]
		return &e, true
	}
	return nil, false
}

func deleteRef(list *[]strapi.Entry, ref string) bool {
	for i, e := range *list {
		if e.Ref() == ref {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeCMS) DeleteCategory(_ context.Context, ref string) bool {
	return deleteRef(&f.categories, ref)
}

func (f *fakeCMS) DeleteTag(_ context.Context, ref string) bool { return deleteRef(&f.tags, ref) }

func TestContent(t *testing.T) {
	cms := newFakeCMS()
	cms.failTitles["Broken"] = true
	var out bytes.Buffer
	m := New(cms, &out, nil)

	all := []domain.Post{
		{ID: 1, Title: "Hello", Slug: "hello", Type: domain.TypePost, Date: "2020-01-02 03:04:05"},
		{ID: 2, Title: "Broken", Slug: "broken", Type: domain.TypePost},
		{ID: 3, Title: "About", Slug: "about", Type: domain.TypePage},
	}

	rep := m.Content(context.Background(), "xml", all)

	if rep.Posts.Total != 2 || rep.Posts.Succeeded != 1 {
		t.Errorf("Expected 1/2 posts, got %s", rep.Posts)
	}
	if len(rep.Posts.Failed) != 1 || rep.Posts.Failed[0] != "Broken" {
		t.Errorf("Expected failed post Broken, got %v", rep.Posts.Failed)
	}
	if rep.Pages.Total != 1 || rep.Pages.Succeeded != 1 {
		t.Errorf("Expected 1/1 pages, got %s", rep.Pages)
	}
	if len(rep.Outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(rep.Outcomes))
	}
	if rep.Outcomes[0].Ref == "" || !rep.Outcomes[0].OK {
		t.Errorf("Expected first outcome to carry a ref, got %+v", rep.Outcomes[0])
	}
	if rep.Outcomes[1].OK || rep.Outcomes[1].Ref != "" {
		t.Errorf("Expected failed outcome without ref, got %+v", rep.Outcomes[1])
	}
	if rep.RunID == "" || rep.Source != "xml" {
		t.Errorf("Expected run id and source, got %q %q", rep.RunID, rep.Source)
	}
	if cms.posts[0].WPPostID != 1 {
		t.Errorf("Expected wpPostId 1, got %d", cms.posts[0].WPPostID)
	}
	if !strings.Contains(out.String(), "Failed posts (1)") {
		t.Errorf("Expected failure summary in output, got:\n%s", out.String())
	}

	v, err := m.Verify(context.Background(), rep)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !v.Passed || v.Posts != 1 || v.Pages != 1 {
		t.Errorf("Expected passing verification, got %+v", v)
	}
}

func TestContentCancelled(t *testing.T) {
	cms := newFakeCMS()
	m := New(cms, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := m.Content(ctx, "sql", []domain.Post{{ID: 1, Title: "A", Type: domain.TypePost}})
	if rep.Posts.Total != 0 || len(cms.posts) != 0 {
		t.Errorf("Expected no writes after cancel, got %d", len(cms.posts))
	}
}

func TestVerifyMismatch(t *testing.T) {
	cms := newFakeCMS()
	m := New(cms, nil, nil)

	var rep = m.Content(context.Background(), "xml", []domain.Post{{ID: 1, Title: "A", Slug: "a", Type: domain.TypePost}})
	cms.posts = nil

	v, err := m.Verify(context.Background(), rep)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v.Passed {
		t.Error("Expected verification to fail when Strapi holds fewer posts")
	}

	cms.listErr = errors.New("unreachable")
	if _, err := m.Verify(context.Background(), rep); err == nil {
		t.Error("Expected list error to surface")
	}
}

func TestListFailuresIsBounded(t *testing.T) {
	var out bytes.Buffer
	m := New(newFakeCMS(), &out, nil)

	m.listFailures([]string{"a", "b", "c", "d", "e", "f", "g"})

	if strings.Count(out.String(), "      - ") != maxListedFailures {
		t.Errorf("Expected %d listed failures, got:\n%s", maxListedFailures, out.String())
	}
	if !strings.Contains(out.String(), "and 2 more") {
		t.Errorf("Expected remainder line, got:\n%s", out.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected short, got %q", got)
	}
	if got := truncate("héllo world", 5); got != "héllo..." {
		t.Errorf("Expected héllo..., got %q", got)
	}
}

func TestDiff(t *testing.T) {
	all := []domain.Post{
		{ID: 1, Type: domain.TypePost},
		{ID: 2, Type: domain.TypePost},
		{ID: 2, Type: domain.TypePage},
		{ID: 3, Type: domain.TypePage},
	}
	posts := []strapi.Entry{{ID: 10, WPPostID: 1}, {ID: 11}}
	pages := []strapi.Entry{{ID: 20, WPPageID: 2}}

	missing, present := Diff(all, posts, pages)

	if len(present) != 2 || present[0].ID != 1 || present[1].Type != domain.TypePage {
		t.Errorf("Unexpected present %+v", present)
	}
	if len(missing) != 2 || missing[0].ID != 2 || missing[0].Type != domain.TypePost || missing[1].ID != 3 {
		t.Errorf("Unexpected missing %+v", missing)
	}
}

func TestMissingSkipsMigrated(t *testing.T) {
	cms := newFakeCMS()
	m := New(cms, nil, nil)
	all := []domain.Post{
		{ID: 1, Title: "A", Slug: "a", Type: domain.TypePost},
		{ID: 2, Title: "B", Slug: "b", Type: domain.TypePost},
	}
	m.Content(context.Background(), "xml", all[:1])

	missing, err := m.Missing(context.Background(), all)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(missing) != 1 || missing[0].ID != 2 {
		t.Errorf("Expected only post 2 to remain, got %+v", missing)
	}
}
