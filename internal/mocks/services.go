package mocks

import (
	"context"
	"net/http"

	"github.com/portfolio-api/internal/service"
)

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, collection, format string) error
	Counts     map[string]int
	CountErr   error
	Streamed   []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: map[string]int{
			service.CollectionProjects: 0,
			service.CollectionSkills:   0,
			service.CollectionBlogs:    0,
		},
	}
}

func (m *MockExportService) Stream(ctx context.Context, w http.ResponseWriter, collection, format string) error {
	m.Streamed = append(m.Streamed, collection+"."+format)
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, collection, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, collection string) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.Counts[collection], nil
}
