package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/domain"
)

// TemplatesRenderer renders the batch template catalog
type TemplatesRenderer struct {
	out io.Writer
}

// NewTemplatesRenderer creates a new templates renderer
func NewTemplatesRenderer(out io.Writer) *TemplatesRenderer {
	return &TemplatesRenderer{out: out}
}

func (r *TemplatesRenderer) Render(templates []*domain.BatchTemplate) error {
	if len(templates) == 0 {
		fmt.Fprintln(r.out, "No batch templates available")
		return nil
	}

	for _, tmpl := range templates {
		fmt.Fprintf(r.out, "%s - %s\n", color.New(color.Bold).Sprint(tmpl.Name), tmpl.Description)
		for i, call := range tmpl.Calls {
			fmt.Fprintf(r.out, "  %d. %s", i+1, call.To)
			if call.Value != "" {
				fmt.Fprintf(r.out, "  value=%s ETH", call.Value)
			}
			if call.Description != "" {
				fmt.Fprintf(r.out, "  (%s)", call.Description)
			}
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out)
	}

	return nil
}
