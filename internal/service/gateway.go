package service

import (
	"strings"

	"github.com/portfolio-api/internal/domain"
)

// trimmed returns the trimmed value of a supplied string field
func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// trimmedList trims every entry of a supplied list, never returning nil
func trimmedList(list *[]string) []string {
	if list == nil {
		return []string{}
	}
	out := make([]string, 0, len(*list))
	for _, v := range *list {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func notFound(resource, id string) error {
	return &domain.NotFoundError{Resource: resource, ID: id}
}
