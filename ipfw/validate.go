package ipfw

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ValidateProtocol accepts only the transports ipfw redirection rules are
// built for: TCP and UDP.
func ValidateProtocol(proto int) error {
	switch proto {
	case unix.IPPROTO_TCP, unix.IPPROTO_UDP:
		return nil
	default:
		logger.WithField("protocol", proto).Error("invalid protocol")
		return fmt.Errorf("%w: %d", ErrInvalidProtocol, proto)
	}
}

// ValidateInterfaceName checks name against the interface name limit of
// DefaultABI.
func ValidateInterfaceName(name string) error {
	return DefaultABI.ValidateInterfaceName(name)
}

// ValidateInterfaceName checks that name is present and its length fits a
// rule's interface name field.
func (a ABI) ValidateInterfaceName(name string) error {
	if name == "" {
		logger.Error("interface name is empty")
		return fmt.Errorf("%w: interface name is empty", ErrInvalidArgument)
	}
	if len(name) < 2 || len(name) > a.IfNameMax {
		logger.WithField("interface", name).Error("invalid interface name length")
		return fmt.Errorf("%w: interface name %q must be 2 to %d characters", ErrInvalidArgument, name, a.IfNameMax)
	}
	return nil
}
