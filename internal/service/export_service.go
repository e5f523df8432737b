package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

// Exportable collections
const (
	CollectionProjects = "projects"
	CollectionSkills   = "skills"
	CollectionBlogs    = "blogs"
)

// Export formats
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
	FormatCSV    = "csv"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// Stream writes the whole collection to w in the requested format.
// CSV is only available for skills.
func (s *exportService) Stream(ctx context.Context, w http.ResponseWriter, collection, format string) error {
	each, err := s.iterator(collection)
	if err != nil {
		return err
	}

	s.log.Info().Str("collection", collection).Str("format", format).Msg("Starting export")

	switch format {
	case FormatNDJSON:
		return s.streamNDJSON(ctx, w, collection, each)
	case FormatJSON:
		return s.streamJSON(ctx, w, collection, each)
	case FormatCSV:
		if collection != CollectionSkills {
			return fmt.Errorf("csv format is only supported for %s", CollectionSkills)
		}
		return s.streamSkillsCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GetCount returns the number of records in a collection
func (s *exportService) GetCount(ctx context.Context, collection string) (int, error) {
	switch collection {
	case CollectionProjects:
		return s.repos.Project.Count(ctx)
	case CollectionSkills:
		return s.repos.Skill.Count(ctx)
	case CollectionBlogs:
		return s.repos.Blog.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown collection: %s", collection)
	}
}

// iterator adapts a repository StreamAll to a record-agnostic callback
type iterator func(ctx context.Context, fn func(record interface{}) error) error

func (s *exportService) iterator(collection string) (iterator, error) {
	switch collection {
	case CollectionProjects:
		return func(ctx context.Context, fn func(interface{}) error) error {
			return s.repos.Project.StreamAll(ctx, func(p *models.Project) error { return fn(p) })
		}, nil
	case CollectionSkills:
		return func(ctx context.Context, fn func(interface{}) error) error {
			return s.repos.Skill.StreamAll(ctx, func(sk *models.Skill) error { return fn(sk) })
		}, nil
	case CollectionBlogs:
		return func(ctx context.Context, fn func(interface{}) error) error {
			return s.repos.Blog.StreamAll(ctx, func(b *models.BlogPost) error { return fn(b) })
		}, nil
	default:
		return nil, fmt.Errorf("unknown collection: %s", collection)
	}
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter, collection string, each iterator) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename="+collection+".ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := each(ctx, func(record interface{}) error {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Str("collection", collection).Int("count", count).Msg("Export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter, collection string, each iterator) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+collection+".json")

	w.Write([]byte("["))
	first := true

	err := each(ctx, func(record interface{}) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamSkillsCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=skills.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"id", "name", "proficiency", "category", "created_at", "updated_at"})

	return s.repos.Skill.StreamAll(ctx, func(skill *models.Skill) error {
		return writer.Write([]string{
			skill.ID,
			skill.Name,
			skill.Proficiency,
			skill.Category,
			skill.CreatedAt.Format(time.RFC3339),
			skill.UpdatedAt.Format(time.RFC3339),
		})
	})
}
