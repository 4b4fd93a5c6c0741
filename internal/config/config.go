package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// ConfigFile marks the project root and holds network definitions
	ConfigFile = "batchctl.toml"

	// DataDirName is the per-project data directory
	DataDirName = ".batchctl"
)

// Network is one configured chain endpoint.
type Network struct {
	Name     string
	ChainID  uint64 `toml:"chain_id"`
	RPCURL   string `toml:"rpc_url"`
	Explorer string `toml:"explorer,omitempty"`
}

// ExplorerTxURL returns the explorer link for a transaction hash, or "" when
// no explorer is configured.
func (n *Network) ExplorerTxURL(txHash string) string {
	if n == nil || n.Explorer == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", n.Explorer, txHash)
}

// FileConfig is the parsed batchctl.toml.
type FileConfig struct {
	DefaultNetwork string              `toml:"default_network"`
	WalletRPC      string              `toml:"wallet_rpc"`
	From           string              `toml:"from,omitempty"`
	Networks       map[string]*Network `toml:"networks"`
}

// RuntimeConfig is the resolved configuration for one command invocation.
type RuntimeConfig struct {
	ProjectRoot string
	DataDir     string

	// Network is the chain selected via --network or default_network
	Network *Network

	// WalletRPC is the wallet extension endpoint (batch methods, signing)
	WalletRPC string

	// From is the account acting as batch sender
	From string

	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
}

// envVarPattern matches ${VAR_NAME} references in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// ExpandEnvVar resolves a pure ${VAR_NAME} reference against the environment.
// Values that are not env references pass through unchanged.
func ExpandEnvVar(raw string) (string, error) {
	matches := envVarPattern.FindStringSubmatch(raw)
	if len(matches) != 2 {
		return raw, nil
	}
	val := os.Getenv(matches[1])
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set", matches[1])
	}
	return val, nil
}

// FindProjectRoot walks up from the working directory looking for
// batchctl.toml.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in current directory or any parent", ConfigFile)
		}
		dir = parent
	}
}

// LoadFileConfig parses batchctl.toml and resolves env references in RPC
// values. A .env next to the config file is loaded first so ${VAR} references
// can point at local secrets.
func LoadFileConfig(projectRoot string) (*FileConfig, error) {
	// Best effort; a missing .env is fine
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	path := filepath.Join(projectRoot, ConfigFile)

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	for name, network := range cfg.Networks {
		network.Name = name
		rpc, err := ExpandEnvVar(network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", name, err)
		}
		network.RPCURL = rpc
	}

	if cfg.WalletRPC != "" {
		wallet, err := ExpandEnvVar(cfg.WalletRPC)
		if err != nil {
			return nil, fmt.Errorf("wallet_rpc: %w", err)
		}
		cfg.WalletRPC = wallet
	}

	return &cfg, nil
}
