package ipfw

import (
	"fmt"
	"strings"
)

// Strategy selects the kind of IP socket the control channel is opened on.
type Strategy int

const (
	StrategyNone Strategy = iota
	// StrategyRaw opens AF_INET/SOCK_RAW/IPPROTO_RAW.
	StrategyRaw
	// StrategyDatagram opens AF_INET/SOCK_DGRAM. FreeBSD accepts ipfw socket
	// options on it when raw sockets are restricted.
	StrategyDatagram
)

func (s Strategy) String() string {
	switch s {
	case StrategyRaw:
		return "raw"
	case StrategyDatagram:
		return "dgram"
	default:
		return "none"
	}
}

// ParseStrategies turns a configured strategy name into the ordered list of
// socket kinds to probe. "auto" yields the platform default order.
func ParseStrategies(name string) ([]Strategy, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DefaultStrategies(), nil
	case "raw":
		return []Strategy{StrategyRaw}, nil
	case "dgram", "datagram":
		return []Strategy{StrategyDatagram}, nil
	default:
		return nil, fmt.Errorf("unsupported socket strategy: %s", name)
	}
}

// Socket is an open IP socket that accepts ipfw socket options at the
// IPPROTO_IP level.
type Socket interface {
	// SetOption forwards data with setsockopt.
	SetOption(opt int, data []byte) error
	// GetOption passes buf and its length to getsockopt and returns the
	// number of bytes the kernel reported.
	GetOption(opt int, buf []byte) (int, error)
	Close() error
}

// Opener creates sockets for a given strategy.
type Opener interface {
	Open(s Strategy) (Socket, error)
}
