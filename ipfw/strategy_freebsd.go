package ipfw

// DefaultStrategies returns the probe order used for "auto". FreeBSD may
// restrict raw sockets, so a datagram socket is tried next.
func DefaultStrategies() []Strategy {
	return []Strategy{StrategyRaw, StrategyDatagram}
}
