package usecase

import (
	"context"
	"sort"

	"github.com/batchlab/batchctl/internal/config"
)

// NetworkInfo is a configured network plus whether it is the active one.
type NetworkInfo struct {
	config.Network
	Selected bool
}

// ListNetworks reports the networks available in the project config.
type ListNetworks struct {
	config *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case.
func NewListNetworks(cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{config: cfg}
}

func (uc *ListNetworks) Run(ctx context.Context) ([]NetworkInfo, error) {
	networks, err := config.Networks(uc.config.ProjectRoot)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]NetworkInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, NetworkInfo{
			Network:  *networks[name],
			Selected: uc.config.Network != nil && uc.config.Network.Name == name,
		})
	}
	return infos, nil
}
