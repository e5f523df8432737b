package repository

import (
	"context"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// ProjectRepository defines the interface for project data operations.
// Lookups that match nothing return (nil, nil).
type ProjectRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) (bool, error)
	Delete(ctx context.Context, id string) (*models.Project, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Project) error) error
}

// SkillRepository defines the interface for skill data operations
type SkillRepository interface {
	List(ctx context.Context) ([]*models.Skill, error)
	GetByID(ctx context.Context, id string) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) (bool, error)
	Delete(ctx context.Context, id string) (*models.Skill, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Skill) error) error
}

// BlogRepository defines the interface for blog post data operations
type BlogRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) (bool, error)
	Delete(ctx context.Context, id string) (*models.BlogPost, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.BlogPost) error) error
}

// IDScheme generates and recognizes store identifiers
type IDScheme interface {
	NewID() string
	Valid(id string) bool
}

// Repositories holds all repository interfaces
type Repositories struct {
	Project ProjectRepository
	Skill   SkillRepository
	Blog    BlogRepository
	IDs     IDScheme
	// Ping reports whether the backing store is reachable
	Ping func(ctx context.Context) error
}

// New creates the postgres-backed repositories
func New(db *database.DB) *Repositories {
	return &Repositories{
		Project: NewProjectRepo(db),
		Skill:   NewSkillRepo(db),
		Blog:    NewBlogRepo(db),
		IDs:     UUIDScheme{},
		Ping:    db.HealthCheck,
	}
}

// NewMongo creates the MongoDB-backed repositories
func NewMongo(m *database.Mongo) *Repositories {
	return &Repositories{
		Project: NewMongoProjectRepo(m),
		Skill:   NewMongoSkillRepo(m),
		Blog:    NewMongoBlogRepo(m),
		IDs:     ObjectIDScheme{},
		Ping:    m.HealthCheck,
	}
}
