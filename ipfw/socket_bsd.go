//go:build freebsd || darwin

package ipfw

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

type sysOpener struct{}

// SystemOpener returns an Opener backed by real kernel sockets.
func SystemOpener() Opener {
	return sysOpener{}
}

func (sysOpener) Open(s Strategy) (Socket, error) {
	var (
		fd  int
		err error
	)
	switch s {
	case StrategyRaw:
		fd, err = unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	case StrategyDatagram:
		fd, err = unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	default:
		return nil, fmt.Errorf("unknown socket strategy %d", int(s))
	}
	if err != nil {
		return nil, err
	}
	return &sysSocket{fd: fd}, nil
}

type sysSocket struct {
	fd int
}

// x/sys/unix only exposes fixed-size option getters, so the variable-length
// ipfw calls go through the raw syscalls.
func (s *sysSocket) SetOption(opt int, data []byte) error {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	_, _, errno := syscall.Syscall6(syscall.SYS_SETSOCKOPT,
		uintptr(s.fd), uintptr(unix.IPPROTO_IP), uintptr(opt),
		uintptr(p), uintptr(len(data)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func (s *sysSocket) GetOption(opt int, buf []byte) (int, error) {
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	// socklen_t, in: capacity, out: bytes written
	size := uint32(len(buf))
	_, _, errno := syscall.Syscall6(syscall.SYS_GETSOCKOPT,
		uintptr(s.fd), uintptr(unix.IPPROTO_IP), uintptr(opt),
		uintptr(p), uintptr(unsafe.Pointer(&size)), 0)
	if errno != 0 {
		return 0, errno
	}
	return int(size), nil
}

func (s *sysSocket) Close() error {
	return unix.Close(s.fd)
}
