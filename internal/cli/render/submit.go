package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/usecase"
)

// SubmitRenderer renders the outcome of a batch submission
type SubmitRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewSubmitRenderer creates a new submit renderer
func NewSubmitRenderer(out io.Writer, network *config.Network) *SubmitRenderer {
	return &SubmitRenderer{out: out, network: network}
}

func (r *SubmitRenderer) Render(result *usecase.SubmitBatchResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Batch submitted: %d call(s)", len(result.Record.Calls))))
	fmt.Fprintf(r.out, "   Batch ID: %s\n", color.New(color.FgCyan).Sprint(result.BatchID))
	fmt.Fprintf(r.out, "   Record:   %s\n", result.Record.ID)

	if result.Estimate != nil {
		fmt.Fprintf(r.out, "   Estimate: %s gas (~%d%% cheaper than sequential)\n",
			FormatGas(result.Estimate.Total), result.Estimate.SavingsPercent)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Track with: batchctl check %s\n", result.BatchID)
	return nil
}
