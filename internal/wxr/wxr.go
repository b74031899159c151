// Package wxr reads WordPress eXtended RSS exports.
package wxr

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"

	"wp2strapi/internal/domain"
)

// Namespaces a WXR 1.2 export must declare.
const (
	NSWordPress = "http://wordpress.org/export/1.2/"
	NSContent   = "http://purl.org/rss/1.0/modules/content/"
	NSExcerpt   = "http://wordpress.org/export/1.2/excerpt/"
	NSDC        = "http://purl.org/dc/elements/1.1/"
)

// Defaults for elements an item may omit.
const (
	DefaultTitle  = "Untitled"
	DefaultAuthor = "Admin"
)

const (
	domainCategory = "category"
	domainTag      = "post_tag"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Channel channel    `xml:"channel"`
}

type channel struct {
	Categories []catalogCategory `xml:"http://wordpress.org/export/1.2/ category"`
	Tags       []catalogTag      `xml:"http://wordpress.org/export/1.2/ tag"`
	Items      []item            `xml:"item"`
}

type catalogCategory struct {
	TermID   *string `xml:"http://wordpress.org/export/1.2/ term_id"`
	NiceName *string `xml:"http://wordpress.org/export/1.2/ category_nicename"`
	Name     *string `xml:"http://wordpress.org/export/1.2/ cat_name"`
}

type catalogTag struct {
	TermID *string `xml:"http://wordpress.org/export/1.2/ term_id"`
	Slug   *string `xml:"http://wordpress.org/export/1.2/ tag_slug"`
	Name   *string `xml:"http://wordpress.org/export/1.2/ tag_name"`
}

type item struct {
	Title    *string `xml:"title"`
	Content  *string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Excerpt  *string `xml:"http://wordpress.org/export/1.2/excerpt/ encoded"`
	Creator  *string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	PostID   *string `xml:"http://wordpress.org/export/1.2/ post_id"`
	PostDate *string `xml:"http://wordpress.org/export/1.2/ post_date"`
	DateGMT  *string `xml:"http://wordpress.org/export/1.2/ post_date_gmt"`
	PostName *string `xml:"http://wordpress.org/export/1.2/ post_name"`
	Status   *string `xml:"http://wordpress.org/export/1.2/ status"`
	PostType *string `xml:"http://wordpress.org/export/1.2/ post_type"`

	Categories []itemCategory `xml:"category"`
}

type itemCategory struct {
	Domain   string `xml:"domain,attr"`
	NiceName string `xml:"nicename,attr"`
	Name     string `xml:",chardata"`
}

// Document is a parsed export.
type Document struct {
	feed rss
}

// Open parses an export file.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wxr: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes an export and checks that it declares the wp, content,
// excerpt and dc namespaces.
func Parse(r io.Reader) (*Document, error) {
	var feed rss
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("wxr: decode: %w", err)
	}

	declared := map[string]bool{}
	for _, a := range feed.Attrs {
		if a.Name.Space == "xmlns" {
			declared[a.Value] = true
		}
	}
	for _, ns := range []string{NSWordPress, NSContent, NSExcerpt, NSDC} {
		if !declared[ns] {
			return nil, fmt.Errorf("wxr: missing namespace declaration %s", ns)
		}
	}

	return &Document{feed: feed}, nil
}

// Name identifies the source in logs and reports.
func (d *Document) Name() string { return "wxr" }

// ItemCount is the number of <item> elements, before filtering.
func (d *Document) ItemCount() int { return len(d.feed.Channel.Items) }

// Posts returns published posts and pages with their category and tag
// associations, in document order.
func (d *Document) Posts() ([]domain.Post, error) {
	var out []domain.Post
	for _, it := range d.feed.Channel.Items {
		postType := text(it.PostType)
		if !domain.IsMigratable(postType) {
			continue
		}
		if text(it.Status) != domain.StatusPublish {
			continue
		}

		p := domain.Post{
			ID:      atoi(text(it.PostID)),
			Title:   orDefault(it.Title, DefaultTitle),
			Content: raw(it.Content),
			Excerpt: raw(it.Excerpt),
			Date:    text(it.PostDate),
			DateGMT: text(it.DateGMT),
			Slug:    text(it.PostName),
			Author:  orDefault(it.Creator, DefaultAuthor),
			Status:  domain.StatusPublish,
			Type:    domain.PostType(postType),
		}

		for _, c := range it.Categories {
			name := strings.TrimSpace(c.Name)
			if name == "" {
				continue
			}
			ref := domain.TermRef{Name: name, Slug: termSlug(c.NiceName, name)}
			switch c.Domain {
			case domainCategory:
				p.Categories = append(p.Categories, ref)
			case domainTag:
				p.Tags = append(p.Tags, ref)
			}
		}

		out = append(out, p)
	}
	return out, nil
}

// Terms returns the channel-level taxonomy catalog, independent of which
// posts use each term.
func (d *Document) Terms() (domain.Terms, error) {
	var out domain.Terms
	for _, c := range d.feed.Channel.Categories {
		if c.Name == nil {
			continue
		}
		out.Categories = append(out.Categories, domain.Term{
			ID:   atoi(text(c.TermID)),
			Name: *c.Name,
			Slug: text(c.NiceName),
		})
	}
	for _, t := range d.feed.Channel.Tags {
		if t.Name == nil {
			continue
		}
		out.Tags = append(out.Tags, domain.Term{
			ID:   atoi(text(t.TermID)),
			Name: *t.Name,
			Slug: text(t.Slug),
		})
	}
	return out, nil
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func raw(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, def string) string {
	if v := text(s); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// termSlug keeps the export's nicename and only derives one from the name
// when the attribute is missing.
func termSlug(nicename, name string) string {
	if v := strings.TrimSpace(nicename); v != "" {
		return v
	}
	s, err := slug.Normalize(name)
	if err != nil {
		return ""
	}
	return s
}
