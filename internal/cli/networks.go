package cli

import (
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List networks configured in batchctl.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			networks, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), networks)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(networks)
		},
	}
}
