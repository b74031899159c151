// Package strapi is a thin client for the Strapi content API: paginated
// listing plus create, update and delete for posts, pages, categories and
// tags. Write failures are logged and reported as an absent result.
package strapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wp2strapi/internal/httpx"
	"wp2strapi/internal/logging"
)

// Collection is a plural API id under /api.
type Collection string

const (
	Posts      Collection = "posts"
	Pages      Collection = "pages"
	Categories Collection = "categories"
	Tags       Collection = "tags"
)

const (
	contentFragment = 200
	termFragment    = 500
)

type Options struct {
	PageSize   int
	PageDelay  time.Duration
	WriteDelay time.Duration
	Logger     logging.Logger
	HTTP       *http.Client
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	pageSize   int
	pageDelay  time.Duration
	writeDelay time.Duration
	log        logging.Logger
	sleep      func(context.Context, time.Duration)
}

func New(baseURL, token string, opts Options) *Client {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Minute,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTP:       httpClient,
		pageSize:   opts.PageSize,
		pageDelay:  opts.PageDelay,
		writeDelay: opts.WriteDelay,
		log:        opts.Logger,
		sleep:      sleepCtx,
	}
}

// Query narrows a list call.
type Query struct {
	// SlugPrefix maps to filters[slug][$startsWith].
	SlugPrefix string
	// Populate lists relation fields to expand.
	Populate []string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.SlugPrefix != "" {
		v.Set("filters[slug][$startsWith]", q.SlugPrefix)
	}
	for i, field := range q.Populate {
		v.Set(fmt.Sprintf("populate[%d]", i), field)
	}
	return v
}

type listResponse struct {
	Data []Entry `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
			Total     int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// List fetches every page of coll. On error it returns the entries gathered
// so far together with the error.
func (c *Client) List(ctx context.Context, coll Collection, q Query) ([]Entry, error) {
	var all []Entry

	for page := 1; ; page++ {
		params := q.values()
		params.Set("pagination[page]", strconv.Itoa(page))
		params.Set("pagination[pageSize]", strconv.Itoa(c.pageSize))

		build, err := httpx.JSONRequest(http.MethodGet, c.collectionURL(coll)+"?"+params.Encode(), c.Token, nil)
		if err != nil {
			return all, err
		}

		var out listResponse
		if err := httpx.DoJSON(ctx, c.HTTP, build, &out, httpx.DefaultRetryConfig()); err != nil {
			return all, fmt.Errorf("strapi: list %s page %d: %w", coll, page, err)
		}

		if len(out.Data) == 0 {
			break
		}
		all = append(all, out.Data...)

		if page >= out.Meta.Pagination.PageCount {
			break
		}
		c.sleep(ctx, c.pageDelay)
		if ctx.Err() != nil {
			return all, ctx.Err()
		}
	}

	return all, nil
}

func (c *Client) ListPosts(ctx context.Context, q Query) ([]Entry, error) {
	return c.List(ctx, Posts, q)
}

func (c *Client) ListPages(ctx context.Context) ([]Entry, error) {
	return c.List(ctx, Pages, Query{})
}

func (c *Client) ListCategories(ctx context.Context) ([]Entry, error) {
	return c.List(ctx, Categories, Query{})
}

func (c *Client) ListTags(ctx context.Context) ([]Entry, error) {
	return c.List(ctx, Tags, Query{})
}

// Ping checks that the API answers and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	build, err := httpx.JSONRequest(http.MethodGet, c.collectionURL(Posts)+"?pagination[pageSize]=1", c.Token, nil)
	if err != nil {
		return err
	}
	cfg := httpx.DefaultRetryConfig()
	cfg.MaxAttempts = 2
	if _, _, err := httpx.Do(ctx, c.HTTP, build, cfg); err != nil {
		return fmt.Errorf("strapi: ping %s: %w", c.BaseURL, err)
	}
	return nil
}

// CreatePost creates a post. The slug is sanitized against the title.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Entry, bool) {
	in.Slug = SanitizeSlug(in.Slug, in.Title)
	return c.create(ctx, Posts, in, in.Title, contentFragment)
}

// CreatePage creates a page. The slug is sanitized against the title.
func (c *Client) CreatePage(ctx context.Context, in PageInput) (*Entry, bool) {
	in.Slug = SanitizeSlug(in.Slug, in.Title)
	return c.create(ctx, Pages, in, in.Title, contentFragment)
}

func (c *Client) CreateCategory(ctx context.Context, in TermInput) (*Entry, bool) {
	return c.create(ctx, Categories, in, in.Name, termFragment)
}

func (c *Client) CreateTag(ctx context.Context, in TermInput) (*Entry, bool) {
	return c.create(ctx, Tags, in, in.Name, termFragment)
}

// UpdatePost applies a partial update to the post identified by ref.
func (c *Client) UpdatePost(ctx context.Context, ref string, data any) (*Entry, bool) {
	build, err := httpx.JSONRequest(http.MethodPut, c.itemURL(Posts, ref), c.Token, envelope{Data: data})
	if err != nil {
		c.log.Error("strapi: encode update", "collection", Posts, "ref", ref, "error", err)
		return nil, false
	}

	var out struct {
		Data Entry `json:"data"`
	}
	err = httpx.DoJSON(ctx, c.HTTP, build, &out, httpx.WriteRetryConfig())
	c.sleep(ctx, c.writeDelay)
	if err != nil {
		c.logFailure("update", Posts, ref, err, contentFragment)
		return nil, false
	}
	return &out.Data, true
}

func (c *Client) DeleteCategory(ctx context.Context, ref string) bool {
	return c.delete(ctx, Categories, ref)
}

func (c *Client) DeleteTag(ctx context.Context, ref string) bool {
	return c.delete(ctx, Tags, ref)
}

type envelope struct {
	Data any `json:"data"`
}

func (c *Client) create(ctx context.Context, coll Collection, data any, label string, fragment int) (*Entry, bool) {
	build, err := httpx.JSONRequest(http.MethodPost, c.collectionURL(coll), c.Token, envelope{Data: data})
	if err != nil {
		c.log.Error("strapi: encode create", "collection", coll, "item", label, "error", err)
		return nil, false
	}

	var out struct {
		Data Entry `json:"data"`
	}
	err = httpx.DoJSON(ctx, c.HTTP, build, &out, httpx.WriteRetryConfig())
	c.sleep(ctx, c.writeDelay)
	if err != nil {
		c.logFailure("create", coll, truncate(label, 50), err, fragment)
		return nil, false
	}
	return &out.Data, true
}

func (c *Client) delete(ctx context.Context, coll Collection, ref string) bool {
	build, err := httpx.JSONRequest(http.MethodDelete, c.itemURL(coll, ref), c.Token, nil)
	if err != nil {
		return false
	}

	_, _, err = httpx.Do(ctx, c.HTTP, build, httpx.WriteRetryConfig())
	c.sleep(ctx, c.writeDelay)
	if err != nil {
		c.logFailure("delete", coll, ref, err, termFragment)
		return false
	}
	return true
}

func (c *Client) logFailure(op string, coll Collection, item string, err error, fragment int) {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		c.log.Error("strapi: "+op+" failed",
			"collection", coll,
			"item", item,
			"status", herr.StatusCode,
			"response", httpx.Snippet(herr.Body, fragment),
		)
		return
	}
	c.log.Error("strapi: "+op+" failed", "collection", coll, "item", item, "error", err)
}

func (c *Client) collectionURL(coll Collection) string {
	return c.BaseURL + "/api/" + string(coll)
}

func (c *Client) itemURL(coll Collection, ref string) string {
	return c.collectionURL(coll) + "/" + url.PathEscape(ref)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
