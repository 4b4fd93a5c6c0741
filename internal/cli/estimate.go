package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/usecase"
)

// NewEstimateCmd creates the estimate command
func NewEstimateCmd() *cobra.Command {
	var source callSourceFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate gas for a batch without submitting it",
		Long: `Estimate per-call and total gas for a proposed batch, with a modeled
comparison against submitting each call as its own transaction.`,
		Example: `  # Estimate a calls file
  batchctl estimate --calls-file batch.yaml

  # Estimate a template
  batchctl estimate --template multi-transfer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			inputs, _, err := source.resolve(cmd, app)
			if err != nil {
				return err
			}

			calls, err := domain.ParseCalls(inputs)
			if err != nil {
				return err
			}

			if app.Config.From == "" || !common.IsHexAddress(app.Config.From) {
				return fmt.Errorf("no valid sender: set --from or from in batchctl.toml")
			}

			est, err := app.EstimateGas.Run(cmd.Context(), usecase.EstimateGasParams{
				From:  common.HexToAddress(app.Config.From),
				Calls: calls,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), est)
			}
			return render.NewEstimateRenderer(cmd.OutOrStdout(), inputs).Render(est)
		},
	}

	source.register(cmd)
	return cmd
}
