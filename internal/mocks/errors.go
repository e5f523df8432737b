package mocks

import "github.com/portfolio-api/internal/domain"

func duplicate(resource, field, value string) error {
	return &domain.DuplicateKeyError{Resource: resource, Field: field, Value: value}
}
