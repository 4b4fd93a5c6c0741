package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/usecase"
)

// RevokeRenderer renders the outcome of a revocation attempt
type RevokeRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewRevokeRenderer creates a new revoke renderer
func NewRevokeRenderer(out io.Writer, network *config.Network) *RevokeRenderer {
	return &RevokeRenderer{out: out, network: network}
}

func (r *RevokeRenderer) Render(result *usecase.RevokeDelegationResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Revocation submitted via %s", result.Method)))

	if result.TxHash != "" {
		fmt.Fprintf(r.out, "   Tx: %s\n", color.New(color.FgCyan).Sprint(result.TxHash))
		if url := r.network.ExplorerTxURL(result.TxHash); url != "" {
			fmt.Fprintf(r.out, "   Explorer: %s\n", url)
		}
	}

	for _, attempt := range result.Attempts {
		fmt.Fprintf(r.out, "   %s %s: %s\n", color.New(color.Faint).Sprint("tried"), attempt.Method, attempt.Message)
	}

	if result.State != nil && !result.State.IsDelegated {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess("Delegation cleared"))
	}

	if result.Warning != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(result.Warning))
	}

	return nil
}
