package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/publishing"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
)

const resourceProject = "project"

// projectService is the concrete implementation of ProjectService
type projectService struct {
	repo repository.ProjectRepository
	ids  repository.IDScheme
	now  func() time.Time
	log  zerolog.Logger
}

func newProjectService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *projectService {
	return &projectService{
		repo: repos.Project,
		ids:  repos.IDs,
		now:  now,
		log:  log.With().Str("service", "project").Logger(),
	}
}

// List returns projects matching filter. A store failure yields an empty list.
func (s *projectService) List(ctx context.Context, filter models.ListFilter) []*models.Project {
	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Bool("published_only", filter.PublishedOnly).Msg("Failed to list projects")
		return []*models.Project{}
	}
	return projects
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceProject, id)
	}
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("get project", err)
	}
	if project == nil {
		return nil, notFound(resourceProject, id)
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, in *models.ProjectInput) (*models.Project, error) {
	now := s.now()
	project := &models.Project{
		ID:               s.ids.NewID(),
		Status:           models.DefaultProjectStatus,
		TechnologiesUsed: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	applyProjectInput(project, in)
	if project.Status == "" {
		project.Status = models.DefaultProjectStatus
	}

	state := publishing.Initial(in.IsPublished, now)
	project.IsPublished, project.PublishedAt = state.IsPublished, state.PublishedAt

	if err := validation.ValidateProject(project); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, domain.NewStorageFault("create project", err)
	}

	s.log.Info().Str("id", project.ID).Str("name", project.Name).Msg("Project created")
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id string, in *models.ProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	old := publishing.State{IsPublished: project.IsPublished, PublishedAt: project.PublishedAt}
	applyProjectInput(project, in)
	state := publishing.Apply(old, in.IsPublished, now)
	project.IsPublished, project.PublishedAt = state.IsPublished, state.PublishedAt
	project.UpdatedAt = now

	if err := validation.ValidateProject(project); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, project)
	if err != nil {
		return nil, domain.NewStorageFault("update project", err)
	}
	if !found {
		return nil, notFound(resourceProject, id)
	}

	s.log.Info().Str("id", project.ID).Bool("published", project.IsPublished).Msg("Project updated")
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) (*models.Project, error) {
	if !s.ids.Valid(id) {
		return nil, notFound(resourceProject, id)
	}
	project, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, domain.NewStorageFault("delete project", err)
	}
	if project == nil {
		return nil, notFound(resourceProject, id)
	}

	s.log.Info().Str("id", id).Msg("Project deleted")
	return project, nil
}

// SetPublished is Update with only isPublished supplied
func (s *projectService) SetPublished(ctx context.Context, id string, published bool) (*models.Project, error) {
	return s.Update(ctx, id, &models.ProjectInput{IsPublished: &published})
}

// applyProjectInput copies the supplied fields of in onto p
func applyProjectInput(p *models.Project, in *models.ProjectInput) {
	if in.Name != nil {
		p.Name = trimmed(in.Name)
	}
	if in.Description != nil {
		p.Description = trimmed(in.Description)
	}
	if in.Category != nil {
		p.Category = trimmed(in.Category)
	}
	if in.Status != nil {
		p.Status = trimmed(in.Status)
	}
	if in.TechnologiesUsed != nil {
		p.TechnologiesUsed = trimmedList(in.TechnologiesUsed)
	}
	if in.ProjectURL != nil {
		p.ProjectURL = trimmed(in.ProjectURL)
	}
	if in.RepositoryURL != nil {
		p.RepositoryURL = trimmed(in.RepositoryURL)
	}
	if in.ImageURL != nil {
		p.ImageURL = trimmed(in.ImageURL)
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.Ptr()
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate.Ptr()
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
}
