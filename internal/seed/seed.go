// Package seed loads portfolio content from files through the admin
// gateway, so seeded records get the same validation, publishing and slug
// handling as records created over HTTP.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/internal/slug"
)

// Content is the shape of the YAML content file
type Content struct {
	Projects []models.ProjectInput `yaml:"projects"`
	Skills   []models.SkillInput   `yaml:"skills"`
}

// Summary counts the outcome of a load
type Summary struct {
	Created int
	Skipped int
	Failed  int
}

func (s *Summary) add(o Summary) {
	s.Created += o.Created
	s.Skipped += o.Skipped
	s.Failed += o.Failed
}

// postFrontMatter is the YAML header of a markdown post
type postFrontMatter struct {
	Title     string   `yaml:"title"`
	Slug      string   `yaml:"slug"`
	Author    string   `yaml:"author"`
	Tags      []string `yaml:"tags"`
	ImageURL  string   `yaml:"imageUrl"`
	Published *bool    `yaml:"published"`
}

// Loader creates records through the service layer
type Loader struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLoader creates a new Loader
func NewLoader(services *service.Services, log zerolog.Logger) *Loader {
	return &Loader{
		services: services,
		log:      log.With().Str("component", "seed").Logger(),
	}
}

// ParseContent decodes a YAML content file
func ParseContent(r io.Reader) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse content file: %w", err)
	}
	return &c, nil
}

// ParsePost decodes a markdown file with YAML front matter. The body
// becomes the post content and the title defaults to the file name.
func ParsePost(r io.Reader, filename string) (*models.BlogPostInput, error) {
	var fm postFrontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter of %s: %w", filename, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	content := string(bytes.TrimSpace(body))

	in := &models.BlogPostInput{
		Title:       &title,
		Content:     &content,
		IsPublished: fm.Published,
	}
	if fm.Slug != "" {
		in.Slug = &fm.Slug
	}
	if fm.Author != "" {
		in.Author = &fm.Author
	}
	if fm.Tags != nil {
		in.Tags = &fm.Tags
	}
	if fm.ImageURL != "" {
		in.ImageURL = &fm.ImageURL
	}
	return in, nil
}

// LoadContentFile creates every project and skill in the YAML file at path
func (l *Loader) LoadContentFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	content, err := ParseContent(f)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	sum.add(l.LoadProjects(ctx, content.Projects))
	sum.add(l.LoadSkills(ctx, content.Skills))
	return sum, nil
}

// LoadProjects creates projects, skipping names that already exist
func (l *Loader) LoadProjects(ctx context.Context, projects []models.ProjectInput) Summary {
	var sum Summary
	for i := range projects {
		in := &projects[i]
		project, err := l.services.Project.Create(ctx, in)
		l.record(&sum, err, "project", deref(in.Name))
		if err == nil {
			l.log.Debug().Str("id", project.ID).Msg("Project seeded")
		}
	}
	return sum
}

// LoadSkills creates skills whose name is not already present
func (l *Loader) LoadSkills(ctx context.Context, skills []models.SkillInput) Summary {
	existing := make(map[string]bool)
	for _, s := range l.services.Skill.List(ctx) {
		existing[strings.ToLower(s.Name)] = true
	}

	var sum Summary
	for i := range skills {
		in := &skills[i]
		name := strings.TrimSpace(deref(in.Name))
		if existing[strings.ToLower(name)] {
			l.log.Info().Str("skill", name).Msg("Skill already exists, skipping")
			sum.Skipped++
			continue
		}
		_, err := l.services.Skill.Create(ctx, in)
		l.record(&sum, err, "skill", name)
		if err == nil {
			existing[strings.ToLower(name)] = true
		}
	}
	return sum
}

// LoadPostsDir creates a post for every .md file in dir, in name order.
// Posts whose slug is already taken are skipped.
func (l *Loader) LoadPostsDir(ctx context.Context, dir string) (Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var sum Summary
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return sum, err
		}
		in, err := ParsePost(bytes.NewReader(data), name)
		if err != nil {
			l.log.Error().Err(err).Str("file", path).Msg("Skipping post")
			sum.Failed++
			continue
		}
		sum.add(l.LoadPost(ctx, in))
	}
	return sum, nil
}

// LoadPost creates a single post unless its slug already exists
func (l *Loader) LoadPost(ctx context.Context, in *models.BlogPostInput) Summary {
	var sum Summary
	s := slug.Derive(deref(in.Title), deref(in.Slug))
	if _, err := l.services.Blog.Get(ctx, s, true); err == nil {
		l.log.Info().Str("slug", s).Msg("Post already exists, skipping")
		sum.Skipped++
		return sum
	}

	_, err := l.services.Blog.Create(ctx, in)
	l.record(&sum, err, "blog post", deref(in.Title))
	return sum
}

func (l *Loader) record(sum *Summary, err error, kind, name string) {
	switch {
	case err == nil:
		sum.Created++
	case errors.Is(err, domain.ErrConflict):
		l.log.Info().Str(kind, name).Msg("Duplicate, skipping")
		sum.Skipped++
	default:
		l.log.Error().Err(err).Str(kind, name).Msg("Failed to seed")
		sum.Failed++
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
