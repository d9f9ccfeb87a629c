//go:build !freebsd && !darwin

package ipfw

import (
	"fmt"
	"runtime"
)

type unsupportedOpener struct{}

// SystemOpener returns an Opener that always fails: the ipfw socket option
// interface only exists on FreeBSD and Darwin kernels.
func SystemOpener() Opener {
	return unsupportedOpener{}
}

func (unsupportedOpener) Open(s Strategy) (Socket, error) {
	return nil, fmt.Errorf("%s socket: ipfw is not available on %s", s, runtime.GOOS)
}
