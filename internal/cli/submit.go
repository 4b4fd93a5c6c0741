package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/usecase"
)

// NewSubmitCmd creates the submit command
func NewSubmitCmd() *cobra.Command {
	var (
		source       callSourceFlags
		notes        string
		skipEstimate bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an atomic call batch via wallet_sendCalls",
		Long: `Build a wallet_sendCalls envelope from a template, a calls file, or an
inline call, submit it through the wallet, and record the pending batch in
local history.`,
		Example: `  # Submit from a template, picked interactively
  batchctl submit

  # Submit a calls file
  batchctl submit --calls-file batch.yaml

  # Submit a single inline call
  batchctl submit --to 0xabc...def --value 0.001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if app.Config.Network == nil {
				return fmt.Errorf("no network selected: set --network or default_network")
			}

			calls, templateName, err := source.resolve(cmd, app)
			if err != nil {
				return err
			}

			if !yes && !app.Config.NonInteractive {
				ok, err := app.Confirmer.Confirm(cmd.Context(),
					fmt.Sprintf("Submit %d call(s) on %s", len(calls), app.Config.Network.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			result, err := app.SubmitBatch.Run(cmd.Context(), usecase.SubmitBatchParams{
				Calls:        calls,
				Template:     templateName,
				Notes:        notes,
				SkipEstimate: skipEstimate,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return render.NewSubmitRenderer(cmd.OutOrStdout(), app.Config.Network).Render(result)
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form note stored with the history record")
	cmd.Flags().BoolVar(&skipEstimate, "skip-estimate", false, "Skip the pre-flight gas estimate")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
