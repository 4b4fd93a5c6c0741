package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/usecase"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [address]",
		Short: "Check EIP-7702 delegation status of an account",
		Long: `Probe an account's bytecode for the EIP-7702 delegation designator.

Without an argument, the configured sender account is probed.`,
		Example: `  # Check the configured account
  batchctl status

  # Check a specific account
  batchctl status 0x1234...abcd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			target := app.Config.From
			if len(args) > 0 {
				target = args[0]
			}
			if target == "" {
				return fmt.Errorf("no account to check: pass an address or set --from")
			}
			if !common.IsHexAddress(target) {
				return fmt.Errorf("invalid address: %s", target)
			}
			address := common.HexToAddress(target)

			state, err := app.CheckDelegation.Run(cmd.Context(), usecase.CheckDelegationParams{Address: address})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), state)
			}
			return render.NewDelegationRenderer(cmd.OutOrStdout(), address).Render(state)
		},
	}

	return cmd
}
