package cli

import (
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/usecase"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <batch-id>",
		Short: "Check the settlement status of a submitted batch",
		Long: `Query wallet_getCallsStatus for a batch identifier. When the batch has
settled and a matching pending history record exists, the record is updated
with the terminal status and receipts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckBatchStatus.Run(cmd.Context(), usecase.CheckBatchStatusParams{
				BatchID: args[0],
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return render.NewBatchStatusRenderer(cmd.OutOrStdout(), app.Config.Network).Render(result)
		},
	}

	return cmd
}
