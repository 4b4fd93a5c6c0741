package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/usecase"
)

// SelectorAdapter handles interactive selection and confirmation.
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter.
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectTemplate lets the user pick a batch template with fuzzy search.
func (s *SelectorAdapter) SelectTemplate(ctx context.Context, templates []*domain.BatchTemplate, prompt string) (*domain.BatchTemplate, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates available")
	}
	if len(templates) == 1 {
		return templates[0], nil
	}

	options := formatTemplateOptions(templates)

	selectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         selectTemplates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return templates[index], nil
}

// Confirm asks a yes/no question. Non-interactive runs refuse rather than
// silently approving a destructive action.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, fmt.Errorf("confirmation required: re-run without --non-interactive or pass --yes")
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// formatTemplateOptions creates display strings for template selection.
func formatTemplateOptions(templates []*domain.BatchTemplate) []string {
	options := make([]string, len(templates))
	for i, tpl := range templates {
		name := color.New(color.FgWhite, color.Bold).Sprint(tpl.Name)
		detail := color.New(color.Faint).Sprintf("(%d calls) %s", len(tpl.Calls), tpl.Description)
		options[i] = fmt.Sprintf("%s %s", name, detail)
	}
	return options
}

// createFuzzySearchFunc builds a promptui searcher backed by fuzzy matching.
func createFuzzySearchFunc(options []string) func(string, int) bool {
	return func(input string, index int) bool {
		if strings.TrimSpace(input) == "" {
			return true
		}
		matches := fuzzy.Find(input, options)
		for _, match := range matches {
			if match.Index == index {
				return true
			}
		}
		return false
	}
}

// Ensure the adapter implements the ports
var (
	_ usecase.TemplateSelector = (*SelectorAdapter)(nil)
	_ usecase.Confirmer        = (*SelectorAdapter)(nil)
)
