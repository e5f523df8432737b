package models

import (
	"time"
)

// BlogPost represents a blog post
type BlogPost struct {
	ID          string     `json:"_id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Content     string     `json:"content" db:"content"`
	Author      string     `json:"author,omitempty" db:"author"`
	Tags        []string   `json:"tags" db:"-"` // Stored as JSON in postgres
	ImageURL    string     `json:"imageUrl,omitempty" db:"image_url"`
	IsPublished bool       `json:"isPublished" db:"is_published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// BlogTags is the fixed tag vocabulary for blog posts
var BlogTags = []string{
	"Technology",
	"Programming",
	"Web Development",
	"Data Science",
	"Tutorial",
	"Opinion",
	"News",
	"Lifestyle",
	"Other",
}

// BlogPostInput is the create payload and partial update payload for a post
type BlogPostInput struct {
	Title       *string   `json:"title" yaml:"title"`
	Slug        *string   `json:"slug" yaml:"slug"`
	Content     *string   `json:"content" yaml:"content"`
	Author      *string   `json:"author" yaml:"author"`
	Tags        *[]string `json:"tags" yaml:"tags"`
	ImageURL    *string   `json:"imageUrl" yaml:"imageUrl"`
	IsPublished *bool     `json:"isPublished" yaml:"isPublished"`
}
