// Package publishing implements the draft/published lifecycle shared by
// blog posts and projects.
//
// A record is a Draft while IsPublished is false and Published while it is
// true. PublishedAt records the first time the record was published and is
// never cleared or moved afterwards, so ordering among ever-published
// records stays stable through unpublish/republish cycles.
package publishing

import "time"

// State is the publish-related part of a record
type State struct {
	IsPublished bool
	PublishedAt *time.Time
}

// Published reports whether the state is in the Published state
func (s State) Published() bool {
	return s.IsPublished
}

// Apply returns the state after applying the requested isPublished value.
// A nil request leaves the state unchanged. Publishing assigns now as
// PublishedAt only if it was never set; unpublishing keeps PublishedAt.
func Apply(old State, isPublished *bool, now time.Time) State {
	next := State{IsPublished: old.IsPublished, PublishedAt: copyTime(old.PublishedAt)}
	if isPublished == nil {
		return next
	}

	next.IsPublished = *isPublished
	if next.IsPublished && next.PublishedAt == nil {
		t := now
		next.PublishedAt = &t
	}
	return next
}

// Initial returns the state of a newly created record
func Initial(isPublished *bool, now time.Time) State {
	return Apply(State{}, isPublished, now)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
