package service

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

// ProjectService defines the query and mutation operations for projects
type ProjectService interface {
	List(ctx context.Context, filter models.ListFilter) []*models.Project
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in *models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, in *models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id string) (*models.Project, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.Project, error)
}

// SkillService defines the query and mutation operations for skills
type SkillService interface {
	List(ctx context.Context) []*models.Skill
	Get(ctx context.Context, id string) (*models.Skill, error)
	Create(ctx context.Context, in *models.SkillInput) (*models.Skill, error)
	Update(ctx context.Context, id string, in *models.SkillInput) (*models.Skill, error)
	Delete(ctx context.Context, id string) (*models.Skill, error)
}

// BlogService defines the query and mutation operations for blog posts
type BlogService interface {
	List(ctx context.Context, filter models.ListFilter) []*models.BlogPost
	// Get resolves idOrSlug as a store id when it is one, falling back to
	// a slug lookup. Drafts are hidden from slug lookups unless includeDrafts.
	Get(ctx context.Context, idOrSlug string, includeDrafts bool) (*models.BlogPost, error)
	Create(ctx context.Context, in *models.BlogPostInput) (*models.BlogPost, error)
	Update(ctx context.Context, id string, in *models.BlogPostInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) (*models.BlogPost, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.BlogPost, error)
}

// UploadService stores uploaded images on local disk
type UploadService interface {
	SaveImage(ctx context.Context, folder string, file *multipart.FileHeader) (*models.UploadResult, error)
}

// FeedService renders public syndication documents
type FeedService interface {
	RSS(ctx context.Context) (string, error)
	Atom(ctx context.Context) (string, error)
	Sitemap(ctx context.Context, w io.Writer) error
	PostHTML(ctx context.Context, idOrSlug string) (string, error)
	RenderMarkdown(content string) (string, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	Stream(ctx context.Context, w http.ResponseWriter, collection, format string) error
	GetCount(ctx context.Context, collection string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Project ProjectService
	Skill   SkillService
	Blog    BlogService
	Upload  UploadService
	Feed    FeedService
	Export  ExportService
	// Ping checks store connectivity, nil when the store cannot be probed
	Ping func(ctx context.Context) error
}

// Option customizes NewServices
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the wall clock used for timestamps, slugs and file names
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger, opts ...Option) *Services {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	projectSvc := newProjectService(repos, o.now, log)
	blogSvc := newBlogService(repos, o.now, log)

	return &Services{
		Project: projectSvc,
		Skill:   newSkillService(repos, o.now, log),
		Blog:    blogSvc,
		Upload:  newUploadService(&cfg.Upload, o.now, log),
		Feed:    newFeedService(blogSvc, projectSvc, &cfg.Site, log),
		Export:  newExportService(repos, log),
		Ping:    repos.Ping,
	}
}
