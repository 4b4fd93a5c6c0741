package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/cli/render"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// NewHistoryCmd creates the history command group
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage the local batch history",
		Long:  `The history store keeps the last 100 submitted batches per project.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	cmd.AddCommand(newHistoryClearCmd())
	cmd.AddCommand(newHistoryExportCmd())
	cmd.AddCommand(newHistoryImportCmd())
	cmd.AddCommand(newHistoryStatsCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var (
		status string
		from   string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			records, err := app.ListHistory.Run(cmd.Context(), domain.HistoryFilter{
				Status: models.BatchStatus(status),
				From:   from,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), records)
			}
			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.Network).RenderList(records)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, confirmed, failed)")
	cmd.Flags().StringVar(&from, "from", "", "Filter by sender address")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to show")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one recorded batch in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			record, err := app.ShowRecord.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), record)
			}
			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.Network).RenderRecord(record)
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete one recorded batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := app.DeleteRecord.Run(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("Record deleted"))
			return nil
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if !yes && !app.Config.NonInteractive {
				ok, err := app.Confirmer.Confirm(cmd.Context(), "Delete all history records")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := app.ClearHistory.Run(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("History cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newHistoryExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			data, err := app.ExportHistory.Run(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("History exported to %s", output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newHistoryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a previously exported history file",
		Long: `Merge records from an export into the local history. Records whose id
already exists locally are skipped; the local record wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			added, err := app.ImportHistory.Run(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Imported %d new record(s)", added)))
			return nil
		},
	}
}

func newHistoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics for the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			stats := app.HistoryStats.Run(cmd.Context())

			if app.Config.JSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.Network).RenderStats(stats)
		},
	}
}
