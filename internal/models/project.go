package models

import (
	"time"
)

// Project represents a portfolio project
type Project struct {
	ID               string     `json:"_id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Description      string     `json:"description" db:"description"`
	Category         string     `json:"category" db:"category"`
	Status           string     `json:"status" db:"status"`
	TechnologiesUsed []string   `json:"technologiesUsed" db:"-"` // Stored as JSON in postgres
	ProjectURL       string     `json:"projectUrl,omitempty" db:"project_url"`
	RepositoryURL    string     `json:"repositoryUrl,omitempty" db:"repository_url"`
	ImageURL         string     `json:"imageUrl,omitempty" db:"image_url"`
	StartDate        *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate          *time.Time `json:"endDate,omitempty" db:"end_date"`
	IsPublished      bool       `json:"isPublished" db:"is_published"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	IsFeatured       bool       `json:"isFeatured" db:"is_featured"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// DefaultProjectStatus is assigned when a project is created without a status
const DefaultProjectStatus = "Planning"

// ProjectCategories lists allowed project categories in display order
var ProjectCategories = []string{
	"Web Application",
	"Mobile App",
	"Data Analysis",
	"Machine Learning Model",
	"Game Development",
	"Tool/Utility",
	"Open Source",
	"Other",
}

// ProjectStatuses lists allowed project statuses in display order
var ProjectStatuses = []string{
	"Planning",
	"In Development",
	"Completed",
	"On Hold",
	"Archived",
}

// ProjectInput is the create payload and, with absent fields left nil,
// the partial update payload for a project
type ProjectInput struct {
	Name             *string   `json:"name" yaml:"name"`
	Description      *string   `json:"description" yaml:"description"`
	Category         *string   `json:"category" yaml:"category"`
	Status           *string   `json:"status" yaml:"status"`
	TechnologiesUsed *[]string `json:"technologiesUsed" yaml:"technologiesUsed"`
	ProjectURL       *string   `json:"projectUrl" yaml:"projectUrl"`
	RepositoryURL    *string   `json:"repositoryUrl" yaml:"repositoryUrl"`
	ImageURL         *string   `json:"imageUrl" yaml:"imageUrl"`
	StartDate        *Date     `json:"startDate" yaml:"startDate"`
	EndDate          *Date     `json:"endDate" yaml:"endDate"`
	IsPublished      *bool     `json:"isPublished" yaml:"isPublished"`
	IsFeatured       *bool     `json:"isFeatured" yaml:"isFeatured"`
}
