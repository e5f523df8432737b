package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

// Store bundles in-memory repositories that honour the same filter and
// ordering rules as the real backends. Setting Err makes every call fail.
type Store struct {
	Projects *MockProjectRepository
	Skills   *MockSkillRepository
	Blogs    *MockBlogRepository
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		Projects: NewMockProjectRepository(),
		Skills:   NewMockSkillRepository(),
		Blogs:    NewMockBlogRepository(),
	}
}

// Repositories exposes the store through the repository aggregate
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Project: s.Projects,
		Skill:   s.Skills,
		Blog:    s.Blogs,
		IDs:     repository.UUIDScheme{},
	}
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mu       sync.Mutex
	Projects map[string]*models.Project
	Err      error
}

var _ repository.ProjectRepository = (*MockProjectRepository)(nil)

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]*models.Project)}
}

func cloneProject(p *models.Project) *models.Project {
	c := *p
	c.TechnologiesUsed = append([]string{}, p.TechnologiesUsed...)
	return &c
}

func (m *MockProjectRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]*models.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		if filter.PublishedOnly && !p.IsPublished {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, nil
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.nameTaken(project.Name, project.ID) {
		return duplicate("project", "name", project.Name)
	}
	m.Projects[project.ID] = cloneProject(project)
	return nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Projects[project.ID]; !ok {
		return false, nil
	}
	if m.nameTaken(project.Name, project.ID) {
		return false, duplicate("project", "name", project.Name)
	}
	m.Projects[project.ID] = cloneProject(project)
	return true, nil
}

func (m *MockProjectRepository) nameTaken(name, excludeID string) bool {
	for id, p := range m.Projects {
		if id != excludeID && p.Name == name {
			return true
		}
	}
	return false
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Projects[id]
	if !ok {
		return nil, nil
	}
	delete(m.Projects, id)
	return p, nil
}

func (m *MockProjectRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Projects), m.Err
}

func (m *MockProjectRepository) StreamAll(ctx context.Context, callback func(*models.Project) error) error {
	all, err := m.List(ctx, models.ListFilter{})
	if err != nil {
		return err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if err := callback(all[i]); err != nil {
			return err
		}
	}
	return nil
}

// MockSkillRepository is a mock implementation of SkillRepository
type MockSkillRepository struct {
	mu     sync.Mutex
	Skills map[string]*models.Skill
	Err    error
}

var _ repository.SkillRepository = (*MockSkillRepository)(nil)

func NewMockSkillRepository() *MockSkillRepository {
	return &MockSkillRepository{Skills: make(map[string]*models.Skill)}
}

func (m *MockSkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.Skill, 0, len(m.Skills))
	for _, s := range m.Skills {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockSkillRepository) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Skills[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c := *skill
	m.Skills[skill.ID] = &c
	return nil
}

func (m *MockSkillRepository) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Skills[skill.ID]; !ok {
		return false, nil
	}
	c := *skill
	m.Skills[skill.ID] = &c
	return true, nil
}

func (m *MockSkillRepository) Delete(ctx context.Context, id string) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Skills[id]
	if !ok {
		return nil, nil
	}
	delete(m.Skills, id)
	return s, nil
}

func (m *MockSkillRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Skills), m.Err
}

func (m *MockSkillRepository) StreamAll(ctx context.Context, callback func(*models.Skill) error) error {
	all, err := m.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range all {
		if err := callback(s); err != nil {
			return err
		}
	}
	return nil
}

// MockBlogRepository is a mock implementation of BlogRepository
type MockBlogRepository struct {
	mu    sync.Mutex
	Posts map[string]*models.BlogPost
	Err   error
}

var _ repository.BlogRepository = (*MockBlogRepository)(nil)

func NewMockBlogRepository() *MockBlogRepository {
	return &MockBlogRepository{Posts: make(map[string]*models.BlogPost)}
}

func clonePost(b *models.BlogPost) *models.BlogPost {
	c := *b
	c.Tags = append([]string{}, b.Tags...)
	return &c
}

func (m *MockBlogRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]*models.BlogPost, 0, len(m.Posts))
	for _, b := range m.Posts {
		if filter.PublishedOnly && !b.IsPublished {
			continue
		}
		out = append(out, clonePost(b))
	}

	if filter.PublishedOnly {
		sort.Slice(out, func(i, j int) bool {
			a, b := out[i].PublishedAt, out[j].PublishedAt
			switch {
			case a == nil && b == nil:
				return out[i].CreatedAt.After(out[j].CreatedAt)
			case a == nil:
				return false
			case b == nil:
				return true
			case a.Equal(*b):
				return out[i].CreatedAt.After(out[j].CreatedAt)
			default:
				return a.After(*b)
			}
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	}

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if b, ok := m.Posts[id]; ok {
		return clonePost(b), nil
	}
	return nil, nil
}

func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, b := range m.Posts {
		if b.Slug == slug {
			return clonePost(b), nil
		}
	}
	return nil, nil
}

func (m *MockBlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	return m.slugTaken(slug, excludeID), nil
}

func (m *MockBlogRepository) slugTaken(slug, excludeID string) bool {
	for id, b := range m.Posts {
		if id != excludeID && b.Slug == slug {
			return true
		}
	}
	return false
}

func (m *MockBlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.slugTaken(post.Slug, post.ID) {
		return duplicate("blog post", "slug", post.Slug)
	}
	m.Posts[post.ID] = clonePost(post)
	return nil
}

func (m *MockBlogRepository) Update(ctx context.Context, post *models.BlogPost) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Posts[post.ID]; !ok {
		return false, nil
	}
	if m.slugTaken(post.Slug, post.ID) {
		return false, duplicate("blog post", "slug", post.Slug)
	}
	m.Posts[post.ID] = clonePost(post)
	return true, nil
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) (*models.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	delete(m.Posts, id)
	return b, nil
}

func (m *MockBlogRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts), m.Err
}

func (m *MockBlogRepository) StreamAll(ctx context.Context, callback func(*models.BlogPost) error) error {
	all, err := m.List(ctx, models.ListFilter{})
	if err != nil {
		return err
	}
	for _, b := range all {
		if err := callback(b); err != nil {
			return err
		}
	}
	return nil
}
