//go:build !linux

package iface

import (
	"fmt"
	"net"
)

// Exists reports an error unless an interface called name is present on the host
func Exists(name string) error {
	if _, err := net.InterfaceByName(name); err != nil {
		return fmt.Errorf("getting interface %s: %v", name, err)
	}
	return nil
}
