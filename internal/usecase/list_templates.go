package usecase

import (
	"context"

	"github.com/batchlab/batchctl/internal/domain"
)

// ListTemplates reports built-in and user batch templates.
type ListTemplates struct {
	catalog TemplateCatalog
}

// NewListTemplates creates a new ListTemplates use case.
func NewListTemplates(catalog TemplateCatalog) *ListTemplates {
	return &ListTemplates{catalog: catalog}
}

func (uc *ListTemplates) Run(ctx context.Context) ([]*domain.BatchTemplate, error) {
	return uc.catalog.ListTemplates(ctx)
}
