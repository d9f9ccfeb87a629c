package rules

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// ParseProtocol converts a protocol name or number to its IP protocol number
func ParseProtocol(protocolStr string) (int, error) {
	protocolStr = strings.ToLower(strings.TrimSpace(protocolStr))
	switch protocolStr {
	case "tcp":
		return unix.IPPROTO_TCP, nil
	case "udp":
		return unix.IPPROTO_UDP, nil
	case "icmp":
		return unix.IPPROTO_ICMP, nil
	}
	n, err := strconv.Atoi(protocolStr)
	if err != nil {
		return 0, fmt.Errorf("unsupported protocol: %s", protocolStr)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("protocol %d out of range (0-255)", n)
	}
	return n, nil
}
