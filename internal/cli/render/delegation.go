package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/domain"
)

// DelegationRenderer renders the result of a delegation probe
type DelegationRenderer struct {
	out     io.Writer
	address common.Address
}

// NewDelegationRenderer creates a new delegation renderer
func NewDelegationRenderer(out io.Writer, address common.Address) *DelegationRenderer {
	return &DelegationRenderer{out: out, address: address}
}

func (r *DelegationRenderer) Render(state *domain.DelegationState) error {
	fmt.Fprintf(r.out, "Account: %s\n\n", r.address.Hex())

	switch {
	case state.IsDelegated:
		fmt.Fprintln(r.out, FormatSuccess("EIP-7702 delegation active"))
		fmt.Fprintf(r.out, "   Delegate: %s\n", color.New(color.FgCyan).Sprint(state.DelegatedTo.Hex()))
	case state.HasCode:
		fmt.Fprintln(r.out, FormatWarning("account has bytecode but no delegation designator"))
		fmt.Fprintf(r.out, "   Code: %d bytes (likely a deployed contract)\n", len(state.Code))
	default:
		fmt.Fprintln(r.out, "No delegation: plain EOA with empty bytecode")
	}

	return nil
}
