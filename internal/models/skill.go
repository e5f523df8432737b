package models

import (
	"time"
)

// Skill represents a skill shown on the portfolio
type Skill struct {
	ID          string    `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Proficiency string    `json:"proficiency" db:"proficiency"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProficiencyLevels lists allowed proficiency levels from strongest to weakest
var ProficiencyLevels = []string{
	"Expert",
	"Advanced",
	"Intermediate",
	"Familiar",
	"Beginner",
}

// SkillCategories lists allowed skill categories
var SkillCategories = []string{
	"Web Development",
	"Data Science",
	"Machine Learning",
	"DevOps",
	"Soft Skills",
	"Other",
}

// ProficiencyRank orders proficiency levels, higher is stronger.
// Unknown levels rank below every known one.
func ProficiencyRank(level string) int {
	for i, l := range ProficiencyLevels {
		if l == level {
			return len(ProficiencyLevels) - i
		}
	}
	return 0
}

// SkillInput is the create payload and partial update payload for a skill
type SkillInput struct {
	Name        *string `json:"name" yaml:"name"`
	Proficiency *string `json:"proficiency" yaml:"proficiency"`
	Category    *string `json:"category" yaml:"category"`
}
