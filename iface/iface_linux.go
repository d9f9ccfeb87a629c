package iface

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// Exists reports an error unless a link called name is present on the host
func Exists(name string) error {
	if _, err := netlink.LinkByName(name); err != nil {
		return fmt.Errorf("getting interface %s: %v", name, err)
	}
	return nil
}
