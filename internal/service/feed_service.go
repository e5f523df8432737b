package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/snabb/sitemap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/models"
)

// feedService builds RSS/Atom feeds from published posts and the sitemap
// from published posts and projects
type feedService struct {
	blogs    BlogService
	projects ProjectService
	site     *config.SiteConfig
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	log      zerolog.Logger
}

func newFeedService(blogs BlogService, projects ProjectService, site *config.SiteConfig, log zerolog.Logger) *feedService {
	return &feedService{
		blogs:    blogs,
		projects: projects,
		site:     site,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
		log:    log.With().Str("service", "feed").Logger(),
	}
}

// RenderMarkdown converts post content to sanitized HTML. Raw HTML in the
// content is kept by goldmark and cleaned by the UGC policy afterwards.
func (s *feedService) RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}

// PostHTML renders a published post looked up by id or slug
func (s *feedService) PostHTML(ctx context.Context, idOrSlug string) (string, error) {
	post, err := s.blogs.Get(ctx, idOrSlug, false)
	if err != nil {
		return "", err
	}
	if !post.IsPublished {
		return "", notFound(resourceBlogPost, idOrSlug)
	}
	return s.RenderMarkdown(post.Content)
}

func (s *feedService) RSS(ctx context.Context) (string, error) {
	feed, err := s.buildFeed(ctx)
	if err != nil {
		return "", err
	}
	return feed.ToRss()
}

func (s *feedService) Atom(ctx context.Context) (string, error) {
	feed, err := s.buildFeed(ctx)
	if err != nil {
		return "", err
	}
	return feed.ToAtom()
}

func (s *feedService) buildFeed(ctx context.Context) (*feeds.Feed, error) {
	posts := s.blogs.List(ctx, models.ListFilter{PublishedOnly: true, Limit: s.site.FeedSize})

	feed := &feeds.Feed{
		Title:       s.site.Title,
		Link:        &feeds.Link{Href: s.site.BaseURL},
		Description: s.site.Description,
		Author:      s.author(""),
		Created:     time.Now(),
	}
	if len(posts) > 0 && posts[0].PublishedAt != nil {
		feed.Updated = *posts[0].PublishedAt
	}

	for _, p := range posts {
		html, err := s.RenderMarkdown(p.Content)
		if err != nil {
			return nil, err
		}
		item := &feeds.Item{
			Id:      s.postURL(p),
			Title:   p.Title,
			Link:    &feeds.Link{Href: s.postURL(p)},
			Content: html,
			Author:  s.author(p.Author),
			Created: p.CreatedAt,
			Updated: p.UpdatedAt,
		}
		if p.PublishedAt != nil {
			item.Created = *p.PublishedAt
		}
		if p.ImageURL != "" {
			item.Enclosure = &feeds.Enclosure{Url: s.absolute(p.ImageURL), Type: "image", Length: "0"}
		}
		feed.Items = append(feed.Items, item)
	}

	s.log.Debug().Int("items", len(feed.Items)).Msg("Feed built")
	return feed, nil
}

// Sitemap writes the public pages, every published post and every
// published project
func (s *feedService) Sitemap(ctx context.Context, w io.Writer) error {
	sm := sitemap.New()
	for _, page := range []string{"/", "/projects", "/blog"} {
		sm.Add(&sitemap.URL{Loc: s.site.BaseURL + page, ChangeFreq: sitemap.Weekly})
	}

	for _, p := range s.blogs.List(ctx, models.ListFilter{PublishedOnly: true}) {
		lastMod := p.UpdatedAt
		sm.Add(&sitemap.URL{
			Loc:        s.postURL(p),
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Monthly,
		})
	}

	for _, p := range s.projects.List(ctx, models.ListFilter{PublishedOnly: true}) {
		lastMod := p.UpdatedAt
		sm.Add(&sitemap.URL{
			Loc:        s.site.BaseURL + "/projects/" + p.ID,
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Monthly,
		})
	}

	_, err := sm.WriteTo(w)
	return err
}

func (s *feedService) postURL(p *models.BlogPost) string {
	return s.site.BaseURL + "/blog/" + p.Slug
}

// absolute turns an uploaded /uploads/... path into a full URL
func (s *feedService) absolute(u string) string {
	if len(u) > 0 && u[0] == '/' {
		return s.site.BaseURL + u
	}
	return u
}

func (s *feedService) author(name string) *feeds.Author {
	if name == "" {
		name = s.site.Author
	}
	if name == "" && s.site.AuthorEmail == "" {
		return nil
	}
	return &feeds.Author{Name: name, Email: s.site.AuthorEmail}
}
