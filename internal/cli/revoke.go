package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/usecase"
)

// NewRevokeCmd creates the revoke command
func NewRevokeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "revoke [address]",
		Short: "Clear an account's EIP-7702 delegation",
		Long: `Clear a delegation by trying wallet-native and standard revocation
methods in order until one succeeds. Without an argument, the configured
sender account is revoked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var address common.Address
			if len(args) > 0 {
				if !common.IsHexAddress(args[0]) {
					return fmt.Errorf("invalid address: %s", args[0])
				}
				address = common.HexToAddress(args[0])
			}

			if !yes && !app.Config.NonInteractive {
				target := app.Config.From
				if address != (common.Address{}) {
					target = address.Hex()
				}
				ok, err := app.Confirmer.Confirm(cmd.Context(),
					fmt.Sprintf("Revoke delegation for %s", target))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			result, err := app.RevokeDelegation.Run(cmd.Context(), usecase.RevokeDelegationParams{
				Address: address,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return render.NewRevokeRenderer(cmd.OutOrStdout(), app.Config.Network).Render(result)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
