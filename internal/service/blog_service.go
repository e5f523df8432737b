package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/publishing"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/slug"
	"github.com/portfolio-api/internal/validation"
)

const (
	resourceBlogPost = "blog post"

	// maxSlugSuffix bounds the search for a free slug
	maxSlugSuffix = 1000
)

// blogService is the concrete implementation of BlogService
type blogService struct {
	repo repository.BlogRepository
	ids  repository.IDScheme
	now  func() time.Time
	log  zerolog.Logger
}

func newBlogService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *blogService {
	return &blogService{
		repo: repos.Blog,
		ids:  repos.IDs,
		now:  now,
		log:  log.With().Str("service", "blog").Logger(),
	}
}

// List returns posts matching filter. A store failure yields an empty list.
func (s *blogService) List(ctx context.Context, filter models.ListFilter) []*models.BlogPost {
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Bool("published_only", filter.PublishedOnly).Msg("Failed to list blog posts")
		return []*models.BlogPost{}
	}
	return posts
}

func (s *blogService) Get(ctx context.Context, idOrSlug string, includeDrafts bool) (*models.BlogPost, error) {
	if s.ids.Valid(idOrSlug) {
		post, err := s.getByID(ctx, idOrSlug)
		if !errors.Is(err, domain.ErrNotFound) {
			return post, err
		}
		// explicit slugs may look like ids
	}

	post, err := s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, domain.NewStorageFault("get blog post by slug", err)
	}
	if post == nil || (!post.IsPublished && !includeDrafts) {
		return nil, notFound(resourceBlogPost, idOrSlug)
	}
	return post, nil
}

func (s *blogService) getByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceBlogPost, id)
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("get blog post", err)
	}
	if post == nil {
		return nil, notFound(resourceBlogPost, id)
	}
	return post, nil
}

func (s *blogService) Create(ctx context.Context, in *models.BlogPostInput) (*models.BlogPost, error) {
	now := s.now()
	post := &models.BlogPost{
		ID:        s.ids.NewID(),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBlogInput(post, in)

	state := publishing.Initial(in.IsPublished, now)
	post.IsPublished, post.PublishedAt = state.IsPublished, state.PublishedAt

	if err := validation.ValidateBlogPost(post); err != nil {
		return nil, err
	}

	var err error
	post.Slug, err = s.uniqueSlug(ctx, slug.DeriveAt(post.Title, trimmed(in.Slug), now), "")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, domain.NewStorageFault("create blog post", err)
	}

	s.log.Info().Str("id", post.ID).Str("slug", post.Slug).Bool("published", post.IsPublished).Msg("Blog post created")
	return post, nil
}

// Update applies a partial update. The slug only changes when the patch
// supplies one, so editing a title keeps existing links working.
func (s *blogService) Update(ctx context.Context, id string, in *models.BlogPostInput) (*models.BlogPost, error) {
	post, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	old := publishing.State{IsPublished: post.IsPublished, PublishedAt: post.PublishedAt}
	applyBlogInput(post, in)
	state := publishing.Apply(old, in.IsPublished, now)
	post.IsPublished, post.PublishedAt = state.IsPublished, state.PublishedAt
	post.UpdatedAt = now

	if err := validation.ValidateBlogPost(post); err != nil {
		return nil, err
	}

	if in.Slug != nil {
		post.Slug, err = s.uniqueSlug(ctx, slug.DeriveAt(post.Title, trimmed(in.Slug), now), post.ID)
		if err != nil {
			return nil, err
		}
	}

	found, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, domain.NewStorageFault("update blog post", err)
	}
	if !found {
		return nil, notFound(resourceBlogPost, id)
	}

	s.log.Info().Str("id", post.ID).Bool("published", post.IsPublished).Msg("Blog post updated")
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, id string) (*models.BlogPost, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceBlogPost, id)
	}
	post, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("delete blog post", err)
	}
	if post == nil {
		return nil, notFound(resourceBlogPost, id)
	}

	s.log.Info().Str("id", id).Msg("Blog post deleted")
	return post, nil
}

// SetPublished is Update with only isPublished supplied
func (s *blogService) SetPublished(ctx context.Context, id string, published bool) (*models.BlogPost, error) {
	return s.Update(ctx, id, &models.BlogPostInput{IsPublished: &published})
}

// uniqueSlug returns base, or base with the first free numeric suffix,
// ignoring the post identified by excludeID
func (s *blogService) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	candidate := base
	for n := 2; n <= maxSlugSuffix; n++ {
		taken, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", domain.NewStorageFault("check slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, n)
	}
	return "", &domain.DuplicateKeyError{Resource: resourceBlogPost, Field: "slug", Value: base}
}

func applyBlogInput(b *models.BlogPost, in *models.BlogPostInput) {
	if in.Title != nil {
		b.Title = trimmed(in.Title)
	}
	if in.Content != nil {
		b.Content = trimmed(in.Content)
	}
	if in.Author != nil {
		b.Author = trimmed(in.Author)
	}
	if in.Tags != nil {
		b.Tags = trimmedList(in.Tags)
	}
	if in.ImageURL != nil {
		b.ImageURL = trimmed(in.ImageURL)
	}
}
