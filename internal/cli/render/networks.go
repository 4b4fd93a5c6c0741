package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/usecase"
)

// NetworksRenderer renders configured networks
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

func (r *NetworksRenderer) Render(networks []usecase.NetworkInfo) error {
	if len(networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in batchctl.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range networks {
		marker := "  "
		name := network.Name
		if network.Selected {
			marker = color.New(color.FgGreen).Sprint("▸ ")
			name = color.New(color.Bold).Sprint(name)
		}
		fmt.Fprintf(r.out, "  %s%s - Chain ID: %d\n", marker, name, network.ChainID)
		if network.Explorer != "" {
			fmt.Fprintf(r.out, "      %s\n", color.New(color.Faint).Sprint(network.Explorer))
		}
	}

	return nil
}
