package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const projectColumns = `id, name, description, category, status, technologies_used, project_url,
	repository_url, image_url, start_date, end_date, is_published, published_at, is_featured,
	created_at, updated_at`

// projectRepo is the postgres implementation of ProjectRepository
type projectRepo struct {
	db *database.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return &projectRepo{db: db}
}

// List returns projects matching filter, newest first
func (r *projectRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`

	var where []string
	if filter.PublishedOnly {
		where = append(where, "is_published = TRUE")
	}
	if filter.FeaturedOnly {
		where = append(where, "is_featured = TRUE")
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var args []interface{}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// GetByID retrieves a project by ID
func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return project, err
}

// Create inserts a new project; project.ID must already be assigned
func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.Category, project.Status,
		jsonList(project.TechnologiesUsed), nullString(project.ProjectURL),
		nullString(project.RepositoryURL), nullString(project.ImageURL),
		nullTime(project.StartDate), nullTime(project.EndDate),
		project.IsPublished, nullTime(project.PublishedAt), project.IsFeatured,
		project.CreatedAt, project.UpdatedAt,
	)
	return duplicateFromPostgres(err, "project", "name", project.Name)
}

// Update overwrites the stored project with the same ID
func (r *projectRepo) Update(ctx context.Context, project *models.Project) (bool, error) {
	query := `
		UPDATE projects SET
			name = $1, description = $2, category = $3, status = $4, technologies_used = $5,
			project_url = $6, repository_url = $7, image_url = $8, start_date = $9, end_date = $10,
			is_published = $11, published_at = $12, is_featured = $13, updated_at = $14
		WHERE id = $15
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.Category, project.Status,
		jsonList(project.TechnologiesUsed), nullString(project.ProjectURL),
		nullString(project.RepositoryURL), nullString(project.ImageURL),
		nullTime(project.StartDate), nullTime(project.EndDate),
		project.IsPublished, nullTime(project.PublishedAt), project.IsFeatured,
		project.UpdatedAt, project.ID,
	)
	if err != nil {
		return false, duplicateFromPostgres(err, "project", "name", project.Name)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Delete removes a project and returns the removed row
func (r *projectRepo) Delete(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM projects WHERE id = $1 RETURNING `+projectColumns, id)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return project, err
}

// Count returns the total number of projects
func (r *projectRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// StreamAll streams all projects for export
func (r *projectRepo) StreamAll(ctx context.Context, callback func(*models.Project) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return err
		}
		if err := callback(project); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var techJSON []byte
	var projectURL, repositoryURL, imageURL sql.NullString
	var startDate, endDate, publishedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Status, &techJSON,
		&projectURL, &repositoryURL, &imageURL, &startDate, &endDate,
		&p.IsPublished, &publishedAt, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.TechnologiesUsed = decodeList(techJSON)
	p.ProjectURL = projectURL.String
	p.RepositoryURL = repositoryURL.String
	p.ImageURL = imageURL.String
	p.StartDate = timePtr(startDate)
	p.EndDate = timePtr(endDate)
	p.PublishedAt = timePtr(publishedAt)
	return &p, nil
}
