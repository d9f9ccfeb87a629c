package config

// ABIConfig describes the ipfw socket option interface of the target kernel
type ABIConfig struct {
	APIVersion uint32 `yaml:"api_version"`
	RuleSize   int    `yaml:"rule_size"`  // sizeof(struct ip_fw)
	IfNameMax  int    `yaml:"ifname_max"` // FW_IFNLEN
	OptAdd     int    `yaml:"opt_add"`
	OptDel     int    `yaml:"opt_del"`
	OptGet     int    `yaml:"opt_get"`
}

// SocketConfig selects how the control socket is opened
type SocketConfig struct {
	Strategy string `yaml:"strategy"` // auto, raw or dgram
}

// FetchConfig bounds ruleset retrieval
type FetchConfig struct {
	BatchSize int `yaml:"batch_size"`
	MaxRules  int `yaml:"max_rules"`
}

// LogConfig controls diagnostics output
type LogConfig struct {
	Level  string `yaml:"level"`
	Syslog bool   `yaml:"syslog"`
	Tag    string `yaml:"tag"`
}

// Config represents the top-level ipfwctl configuration
type Config struct {
	ABI    ABIConfig    `yaml:"abi"`
	Socket SocketConfig `yaml:"socket"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Log    LogConfig    `yaml:"log"`
}
