package repository

import (
	"context"
	"database/sql"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const skillColumns = `id, name, proficiency, category, created_at, updated_at`

// skillRepo is the postgres implementation of SkillRepository
type skillRepo struct {
	db *database.DB
}

// NewSkillRepo creates a new skill repository
func NewSkillRepo(db *database.DB) SkillRepository {
	return &skillRepo{db: db}
}

// List returns all skills ordered by name
func (r *skillRepo) List(ctx context.Context) ([]*models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]*models.Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// GetByID retrieves a skill by ID
func (r *skillRepo) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	skill, err := scanSkill(r.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return skill, err
}

// Create inserts a new skill
func (r *skillRepo) Create(ctx context.Context, skill *models.Skill) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO skills (`+skillColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		skill.ID, skill.Name, skill.Proficiency, skill.Category, skill.CreatedAt, skill.UpdatedAt,
	)
	return err
}

// Update overwrites the stored skill with the same ID
func (r *skillRepo) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE skills SET name = $1, proficiency = $2, category = $3, updated_at = $4 WHERE id = $5`,
		skill.Name, skill.Proficiency, skill.Category, skill.UpdatedAt, skill.ID,
	)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Delete removes a skill and returns the removed row
func (r *skillRepo) Delete(ctx context.Context, id string) (*models.Skill, error) {
	skill, err := scanSkill(r.db.QueryRowContext(ctx, `DELETE FROM skills WHERE id = $1 RETURNING `+skillColumns, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return skill, err
}

// Count returns the total number of skills
func (r *skillRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM skills").Scan(&count)
	return count, err
}

// StreamAll streams all skills for export
func (r *skillRepo) StreamAll(ctx context.Context, callback func(*models.Skill) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY created_at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return err
		}
		if err := callback(skill); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanSkill(row rowScanner) (*models.Skill, error) {
	var s models.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Proficiency, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
