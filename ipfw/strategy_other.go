//go:build !freebsd

package ipfw

// DefaultStrategies returns the probe order used for "auto".
func DefaultStrategies() []Strategy {
	return []Strategy{StrategyRaw}
}
