package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"ipfwctl/ipfw"
)

const (
	DefaultBatchSize = 10
	DefaultLogTag    = "ipfwctl"
)

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads and parses the YAML configuration file. An empty path
// yields the defaults.
func LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data, fills in defaults and validates it
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v", err)
	}
	applyDefaults(&config)
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	def := ipfw.DefaultABI
	if config.ABI.APIVersion == 0 {
		config.ABI.APIVersion = def.APIVersion
	}
	if config.ABI.IfNameMax == 0 {
		config.ABI.IfNameMax = def.IfNameMax
	}
	if config.ABI.OptAdd == 0 {
		config.ABI.OptAdd = def.OptAdd
	}
	if config.ABI.OptDel == 0 {
		config.ABI.OptDel = def.OptDel
	}
	if config.ABI.OptGet == 0 {
		config.ABI.OptGet = def.OptGet
	}
	if config.Socket.Strategy == "" {
		config.Socket.Strategy = "auto"
	}
	if config.Fetch.BatchSize == 0 {
		config.Fetch.BatchSize = DefaultBatchSize
	}
	if config.Fetch.MaxRules == 0 {
		config.Fetch.MaxRules = ipfw.DefaultMaxRules
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Tag == "" {
		config.Log.Tag = DefaultLogTag
	}
}

func (c *Config) validate() error {
	if c.ABI.RuleSize < 0 {
		return fmt.Errorf("invalid abi.rule_size: %d", c.ABI.RuleSize)
	}
	if c.ABI.IfNameMax < 2 {
		return fmt.Errorf("invalid abi.ifname_max: %d, must be at least 2", c.ABI.IfNameMax)
	}
	if c.ABI.OptAdd < 0 || c.ABI.OptDel < 0 || c.ABI.OptGet < 0 {
		return fmt.Errorf("invalid abi socket options: add=%d del=%d get=%d", c.ABI.OptAdd, c.ABI.OptDel, c.ABI.OptGet)
	}
	if _, err := ipfw.ParseStrategies(c.Socket.Strategy); err != nil {
		return fmt.Errorf("invalid socket.strategy: %s, must be 'auto', 'raw' or 'dgram'", c.Socket.Strategy)
	}
	if c.Fetch.BatchSize < 1 {
		return fmt.Errorf("invalid fetch.batch_size: %d, must be positive", c.Fetch.BatchSize)
	}
	if c.Fetch.MaxRules < c.Fetch.BatchSize {
		return fmt.Errorf("invalid fetch.max_rules: %d, must be at least fetch.batch_size (%d)", c.Fetch.MaxRules, c.Fetch.BatchSize)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}
	return nil
}

// ToABI converts the ABI section into the form used by the ipfw package
func (a ABIConfig) ToABI() ipfw.ABI {
	return ipfw.ABI{
		APIVersion: a.APIVersion,
		RuleSize:   a.RuleSize,
		IfNameMax:  a.IfNameMax,
		OptAdd:     a.OptAdd,
		OptDel:     a.OptDel,
		OptGet:     a.OptGet,
	}
}

// ChannelConfig builds the ipfw channel parameters described by the config
func (c *Config) ChannelConfig() (ipfw.Config, error) {
	strategies, err := ipfw.ParseStrategies(c.Socket.Strategy)
	if err != nil {
		return ipfw.Config{}, err
	}
	return ipfw.Config{
		ABI:        c.ABI.ToABI(),
		Strategies: strategies,
		MaxRules:   c.Fetch.MaxRules,
		Logger:     log.WithField("component", "ipfw"),
	}, nil
}
