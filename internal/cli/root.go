package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/adapters/progress"
	"github.com/batchlab/batchctl/internal/app"
	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

// appKey is the context key for the app instance
const appKey contextKey = "app"

// timeoutCancel releases the per-invocation timeout context. The process runs
// one command, so a package variable is enough.
var timeoutCancel context.CancelFunc

// Execute runs the CLI. The timeout context is released here rather than in a
// post-run hook because cobra skips those hooks when a command fails.
func Execute() error {
	return run(NewRootCmd())
}

func run(root *cobra.Command) error {
	defer func() {
		if timeoutCancel != nil {
			timeoutCancel()
		}
	}()
	return root.Execute()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "batchctl",
		Short: "EIP-7702 delegation and ERC-5792 batch transaction toolkit",
		Long: `batchctl inspects EIP-7702 delegation status, submits atomic call
batches through wallet_sendCalls, estimates batch gas savings, and keeps a
local history of submitted batches.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for commands that never touch a project
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			config.BindGlobalFlags(v, cmd.Flags())

			cfg, err := config.Provider(v)
			if err != nil {
				return err
			}

			var sink usecase.ProgressSink
			if cfg.NonInteractive || cfg.JSON {
				sink = progress.NewNopSink()
			} else {
				sink = progress.NewSpinnerSink()
			}

			appInstance, err := app.InitApp(cfg, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if cfg.Timeout > 0 {
				ctx, timeoutCancel = context.WithTimeout(ctx, cfg.Timeout)
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., mainnet, sepolia)")
	rootCmd.PersistentFlags().String("from", "", "Account acting as batch sender")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().Duration("timeout", 2*time.Minute, "Timeout for wallet and chain operations")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	statusCmd := NewStatusCmd()
	statusCmd.GroupID = "main"
	rootCmd.AddCommand(statusCmd)

	submitCmd := NewSubmitCmd()
	submitCmd.GroupID = "main"
	rootCmd.AddCommand(submitCmd)

	estimateCmd := NewEstimateCmd()
	estimateCmd.GroupID = "main"
	rootCmd.AddCommand(estimateCmd)

	checkCmd := NewCheckCmd()
	checkCmd.GroupID = "main"
	rootCmd.AddCommand(checkCmd)

	revokeCmd := NewRevokeCmd()
	revokeCmd.GroupID = "main"
	rootCmd.AddCommand(revokeCmd)

	historyCmd := NewHistoryCmd()
	historyCmd.GroupID = "management"
	rootCmd.AddCommand(historyCmd)

	templatesCmd := NewTemplatesCmd()
	templatesCmd.GroupID = "management"
	rootCmd.AddCommand(templatesCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
