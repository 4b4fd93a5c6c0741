package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain/models"
	"github.com/batchlab/batchctl/internal/usecase"
)

// HistoryRenderer renders batch history listings and record detail
type HistoryRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, network *config.Network) *HistoryRenderer {
	return &HistoryRenderer{out: out, network: network}
}

// RenderList renders records newest-first in table form.
func (r *HistoryRenderer) RenderList(records []*models.BatchTransactionRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No batch transactions recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Age", "Status", "Chain", "Calls", "From"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.ID,
			FormatAge(rec.Timestamp),
			FormatStatus(rec.Status),
			rec.ChainID,
			len(rec.Calls),
			ShortHash(rec.From),
		})
	}
	t.Render()
	return nil
}

// RenderRecord renders one record in full detail.
func (r *HistoryRenderer) RenderRecord(rec *models.BatchTransactionRecord) error {
	fmt.Fprintf(r.out, "%s  %s\n", color.New(color.Bold).Sprint(rec.ID), FormatStatus(rec.Status))
	fmt.Fprintf(r.out, "Submitted: %s\n", time.UnixMilli(rec.Timestamp).Format(time.RFC3339))
	fmt.Fprintf(r.out, "Chain:     %d\n", rec.ChainID)
	fmt.Fprintf(r.out, "From:      %s\n", rec.From)
	if rec.Template != "" {
		fmt.Fprintf(r.out, "Template:  %s\n", rec.Template)
	}
	if rec.Notes != "" {
		fmt.Fprintf(r.out, "Notes:     %s\n", rec.Notes)
	}
	if rec.Error != "" {
		fmt.Fprintf(r.out, "Error:     %s\n", color.New(color.FgRed).Sprint(rec.Error))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Calls (%d):\n", len(rec.Calls))
	for i, call := range rec.Calls {
		fmt.Fprintf(r.out, "  %d. %s", i+1, call.To)
		if call.Value != "" {
			fmt.Fprintf(r.out, "  value=%s wei", call.Value)
		}
		if call.Data != "" {
			fmt.Fprintf(r.out, "  data=%s", ShortHash(call.Data))
		}
		if call.Description != "" {
			fmt.Fprintf(r.out, "  (%s)", call.Description)
		}
		fmt.Fprintln(r.out)
	}

	if rec.GasEstimate != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Gas estimate: %s (%s ETH)", rec.GasEstimate.Total, rec.GasEstimate.TotalEther)
		if rec.GasEstimate.SavingsPercent > 0 {
			fmt.Fprintf(r.out, ", ~%d%% saved vs sequential", rec.GasEstimate.SavingsPercent)
		}
		fmt.Fprintln(r.out)
	}

	if len(rec.Receipts) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Receipts:")
		for _, receipt := range rec.Receipts {
			fmt.Fprintf(r.out, "  %s  block=%s  gas=%s\n", receipt.TransactionHash, receipt.BlockNumber, receipt.GasUsed)
			if url := r.network.ExplorerTxURL(receipt.TransactionHash); url != "" {
				fmt.Fprintf(r.out, "    %s\n", color.New(color.Faint).Sprint(url))
			}
		}
	}

	return nil
}

// RenderStats renders collection-level statistics.
func (r *HistoryRenderer) RenderStats(stats *usecase.HistoryStats) error {
	if stats.Total == 0 {
		fmt.Fprintln(r.out, "No batch transactions recorded")
		return nil
	}

	fmt.Fprintf(r.out, "Batches:   %d total\n", stats.Total)
	fmt.Fprintf(r.out, "           %s confirmed, %s pending, %s failed\n",
		color.New(color.FgGreen).Sprintf("%d", stats.Confirmed),
		color.New(color.FgYellow).Sprintf("%d", stats.Pending),
		color.New(color.FgRed).Sprintf("%d", stats.Failed))
	fmt.Fprintf(r.out, "Calls:     %d across all batches\n", stats.TotalCalls)
	fmt.Fprintf(r.out, "Oldest:    %s\n", time.UnixMilli(stats.OldestTimestamp).Format(time.RFC3339))
	fmt.Fprintf(r.out, "Newest:    %s\n", time.UnixMilli(stats.NewestTimestamp).Format(time.RFC3339))
	return nil
}
