package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/usecase"
)

// TemplatesFile holds user-defined templates inside the data directory.
const TemplatesFile = "templates.yaml"

// builtinTemplates ship with the tool as ready-made demos.
var builtinTemplates = []*domain.BatchTemplate{
	{
		Name:        "multi-transfer",
		Description: "Send ETH to multiple addresses at once",
		Calls: []domain.CallInput{
			{To: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1", Value: "0.001", Description: "Send 0.001 ETH to address 1"},
			{To: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", Value: "0.002", Description: "Send 0.002 ETH to address 2"},
			{To: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", Value: "0.001", Description: "Send 0.001 ETH to address 3"},
		},
	},
	{
		Name:        "approve-swap",
		Description: "Approve a token and swap in one atomic batch",
		Calls: []domain.CallInput{
			{
				To:          "0x7af963cF6D228E564e2A0aA0DdBF06210B38615D",
				Data:        "0x095ea7b3000000000000000000000000742d35cc6634c0532925a3b844bc9e7595f0beb10000000000000000000000000000000000000000000000000de0b6b3a7640000",
				Description: "Approve 1 token to router",
			},
			{
				To:          "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1",
				Data:        "0x38ed1739000000000000000000000000000000000000000000000000000000000000000a",
				Description: "Swap tokens",
			},
		},
	},
	{
		Name:        "self-transfers",
		Description: "Two zero-value self transfers for safe end-to-end testing",
		Calls: []domain.CallInput{
			{To: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", Value: "0"},
			{To: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", Value: "0"},
		},
	},
}

// TemplateCatalogAdapter serves built-in templates merged with user
// templates from the data directory. User templates shadow built-ins with
// the same name.
type TemplateCatalogAdapter struct {
	dataDir string
}

// NewTemplateCatalogAdapter creates a new catalog adapter.
func NewTemplateCatalogAdapter(cfg *config.RuntimeConfig) *TemplateCatalogAdapter {
	return &TemplateCatalogAdapter{dataDir: cfg.DataDir}
}

// ListTemplates returns all templates, user-defined first.
func (a *TemplateCatalogAdapter) ListTemplates(ctx context.Context) ([]*domain.BatchTemplate, error) {
	user, err := a.loadUserTemplates()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(user))
	for _, tpl := range user {
		names[tpl.Name] = true
	}

	result := user
	for _, tpl := range builtinTemplates {
		if !names[tpl.Name] {
			result = append(result, tpl)
		}
	}
	return result, nil
}

// GetTemplate returns one template by name.
func (a *TemplateCatalogAdapter) GetTemplate(ctx context.Context, name string) (*domain.BatchTemplate, error) {
	templates, err := a.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		if tpl.Name == name {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("template '%s': %w", name, domain.ErrNotFound)
}

func (a *TemplateCatalogAdapter) loadUserTemplates() ([]*domain.BatchTemplate, error) {
	path := filepath.Join(a.dataDir, TemplatesFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", TemplatesFile, err)
	}

	var doc struct {
		Templates []*domain.BatchTemplate `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TemplatesFile, err)
	}
	return doc.Templates, nil
}

// Ensure the adapter implements the port
var _ usecase.TemplateCatalog = (*TemplateCatalogAdapter)(nil)
