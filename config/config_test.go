package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipfwctl/ipfw"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ipfw.DefaultABI.APIVersion, cfg.ABI.APIVersion)
	assert.Equal(t, ipfw.DefaultABI.OptGet, cfg.ABI.OptGet)
	assert.Zero(t, cfg.ABI.RuleSize)
	assert.Equal(t, "auto", cfg.Socket.Strategy)
	assert.Equal(t, DefaultBatchSize, cfg.Fetch.BatchSize)
	assert.Equal(t, ipfw.DefaultMaxRules, cfg.Fetch.MaxRules)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultLogTag, cfg.Log.Tag)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipfwctl.yaml")
	data := []byte(`
abi:
  rule_size: 112
  ifname_max: 16
  opt_add: 50
  opt_del: 51
  opt_get: 54
socket:
  strategy: dgram
fetch:
  batch_size: 32
log:
  level: debug
  syslog: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	abi := cfg.ABI.ToABI()
	assert.Equal(t, ipfw.ABI{APIVersion: 20, RuleSize: 112, IfNameMax: 16, OptAdd: 50, OptDel: 51, OptGet: 54}, abi)
	assert.NoError(t, abi.Validate())
	assert.True(t, cfg.Log.Syslog)

	chCfg, err := cfg.ChannelConfig()
	require.NoError(t, err)
	assert.Equal(t, []ipfw.Strategy{ipfw.StrategyDatagram}, chCfg.Strategies)
	assert.Equal(t, ipfw.DefaultMaxRules, chCfg.MaxRules)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad strategy", data: "socket:\n  strategy: tun\n"},
		{name: "negative batch", data: "fetch:\n  batch_size: -1\n"},
		{name: "max below batch", data: "fetch:\n  batch_size: 20\n  max_rules: 5\n"},
		{name: "short ifname limit", data: "abi:\n  ifname_max: 1\n"},
		{name: "bad level", data: "log:\n  level: loud\n"},
		{name: "unknown key", data: "sockets:\n  strategy: raw\n"},
		{name: "not yaml", data: "abi: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
