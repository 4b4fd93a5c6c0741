package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SetupViper creates a viper instance scoped to the project.
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.Set("project_root", projectRoot)
	v.SetEnvPrefix("BATCHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindGlobalFlags copies the persistent flags into viper.
func BindGlobalFlags(v *viper.Viper, flags *pflag.FlagSet) {
	names := map[string]string{
		"network":         "network",
		"from":            "from",
		"debug":           "debug",
		"non-interactive": "non_interactive",
		"json":            "json",
		"timeout":         "timeout",
	}
	for flag, key := range names {
		if f := flags.Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// Provider resolves the RuntimeConfig for one invocation.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}

	fileCfg, err := LoadFileConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		WalletRPC:      fileCfg.WalletRPC,
		From:           fileCfg.From,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	if from := v.GetString("from"); from != "" {
		cfg.From = from
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = fileCfg.DefaultNetwork
	}
	if networkName != "" {
		network, ok := fileCfg.Networks[networkName]
		if !ok {
			return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ConfigFile)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// Networks returns all configured networks for listing.
func Networks(projectRoot string) (map[string]*Network, error) {
	fileCfg, err := LoadFileConfig(projectRoot)
	if err != nil {
		return nil, err
	}
	return fileCfg.Networks, nil
}
