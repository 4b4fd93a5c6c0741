package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/usecase"
)

// BatchStatusRenderer renders a one-shot batch status check
type BatchStatusRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewBatchStatusRenderer creates a new batch status renderer
func NewBatchStatusRenderer(out io.Writer, network *config.Network) *BatchStatusRenderer {
	return &BatchStatusRenderer{out: out, network: network}
}

func (r *BatchStatusRenderer) Render(result *usecase.CheckBatchStatusResult) error {
	fmt.Fprintf(r.out, "Batch %s: %s\n", result.BatchID, FormatStatus(result.Status))

	if len(result.Receipts) > 0 {
		fmt.Fprintln(r.out)
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Tx", "Block", "Gas Used", "Status"})
		for _, receipt := range result.Receipts {
			t.AppendRow(table.Row{ShortHash(receipt.TransactionHash), receipt.BlockNumber, receipt.GasUsed, receipt.Status})
		}
		t.Render()

		if url := r.network.ExplorerTxURL(result.Receipts[0].TransactionHash); url != "" {
			fmt.Fprintf(r.out, "\nExplorer: %s\n", url)
		}
	}

	if result.Updated {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "History record updated.")
	}

	return nil
}
