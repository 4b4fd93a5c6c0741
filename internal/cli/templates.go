package cli

import (
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
)

// NewTemplatesCmd creates the templates command
func NewTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available batch templates",
		Long: `List built-in batch templates plus any user templates from
.batchctl/templates.yaml. A user template with the same name as a built-in
replaces it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			templates, err := app.ListTemplates.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), templates)
			}
			return render.NewTemplatesRenderer(cmd.OutOrStdout()).Render(templates)
		},
	}
}
