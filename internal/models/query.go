package models

// StatusPublished selects only published records in list queries
const StatusPublished = "published"

// ListFilter narrows a list query. The zero value lists everything.
type ListFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	// Limit caps the result count, values <= 0 mean unlimited
	Limit int
}
