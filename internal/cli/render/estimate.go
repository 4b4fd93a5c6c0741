package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/batchlab/batchctl/internal/domain"
)

// EstimateRenderer renders a batch gas estimate
type EstimateRenderer struct {
	out   io.Writer
	calls []domain.CallInput
}

// NewEstimateRenderer creates a new estimate renderer
func NewEstimateRenderer(out io.Writer, calls []domain.CallInput) *EstimateRenderer {
	return &EstimateRenderer{out: out, calls: calls}
}

func (r *EstimateRenderer) Render(est *domain.GasEstimate) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "To", "Description", "Gas"})

	for i, gas := range est.PerCall {
		var to, desc string
		if i < len(r.calls) {
			to = ShortHash(r.calls[i].To)
			desc = r.calls[i].Description
		}
		t.AppendRow(table.Row{i + 1, to, desc, FormatGas(gas)})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Batched:     %s gas  (%s ETH)\n", FormatGas(est.Total), est.TotalEther)
	fmt.Fprintf(r.out, "Sequential:  %s gas  (%s ETH)\n", FormatGas(est.Sequential), est.SequentialEther)
	fmt.Fprintf(r.out, "Savings:     %s  (%s ETH, ~%d%%)\n",
		color.New(color.FgGreen).Sprint(FormatGas(new(big.Int).Sub(est.Sequential, est.Total))),
		est.SavingsEther, est.SavingsPercent)
	fmt.Fprintf(r.out, "Gas price:   %s wei\n", FormatGas(est.GasPrice))

	return nil
}
