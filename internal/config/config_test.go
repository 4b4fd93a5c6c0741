package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchlab/batchctl/internal/config"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0o644))
}

func TestExpandEnvVar(t *testing.T) {
	t.Run("plain values pass through", func(t *testing.T) {
		got, err := config.ExpandEnvVar("https://rpc.example.org")
		require.NoError(t, err)
		assert.Equal(t, "https://rpc.example.org", got)
	})

	t.Run("pure reference resolves", func(t *testing.T) {
		t.Setenv("BATCHCTL_TEST_RPC", "https://rpc.example.org/key")

		got, err := config.ExpandEnvVar("${BATCHCTL_TEST_RPC}")
		require.NoError(t, err)
		assert.Equal(t, "https://rpc.example.org/key", got)
	})

	t.Run("unset reference fails loudly", func(t *testing.T) {
		_, err := config.ExpandEnvVar("${BATCHCTL_TEST_DOES_NOT_EXIST}")
		assert.Error(t, err)
	})

	t.Run("embedded references are not expanded", func(t *testing.T) {
		got, err := config.ExpandEnvVar("https://rpc.example.org/${KEY}")
		require.NoError(t, err)
		assert.Equal(t, "https://rpc.example.org/${KEY}", got)
	})
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("parses networks and expands rpc references", func(t *testing.T) {
		t.Setenv("SEPOLIA_RPC", "https://sepolia.example.org")

		dir := t.TempDir()
		writeConfig(t, dir, `
default_network = "sepolia"
from = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

[networks.sepolia]
chain_id = 11155111
rpc_url = "${SEPOLIA_RPC}"
explorer = "https://sepolia.etherscan.io"

[networks.local]
chain_id = 31337
rpc_url = "http://localhost:8545"
`)

		cfg, err := config.LoadFileConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "sepolia", cfg.DefaultNetwork)

		sepolia := cfg.Networks["sepolia"]
		require.NotNil(t, sepolia)
		assert.Equal(t, "sepolia", sepolia.Name)
		assert.Equal(t, uint64(11155111), sepolia.ChainID)
		assert.Equal(t, "https://sepolia.example.org", sepolia.RPCURL)
	})

	t.Run("unset rpc reference fails with the network named", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `
[networks.sepolia]
chain_id = 11155111
rpc_url = "${BATCHCTL_TEST_MISSING_RPC}"
`)

		_, err := config.LoadFileConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sepolia")
	})
}

func TestExplorerTxURL(t *testing.T) {
	network := &config.Network{Explorer: "https://sepolia.etherscan.io"}
	assert.Equal(t,
		"https://sepolia.etherscan.io/tx/0xabc",
		network.ExplorerTxURL("0xabc"))

	var missing *config.Network
	assert.Empty(t, missing.ExplorerTxURL("0xabc"))
}
