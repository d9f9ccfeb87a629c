package ipfw

import (
	"encoding/binary"
	"fmt"
)

// ABI describes the ipfw socket option interface spoken by the target kernel.
type ABI struct {
	// APIVersion is stamped into the first field of every rule record
	// (IP_FW_CURRENT_API_VERSION).
	APIVersion uint32
	// RuleSize is sizeof(struct ip_fw) on the target kernel.
	RuleSize int
	// IfNameMax is the longest interface name a rule can carry (FW_IFNLEN).
	IfNameMax int

	OptAdd int // IP_FW_ADD
	OptDel int // IP_FW_DEL
	OptGet int // IP_FW_GET
}

// versionLen is the width of the leading version field of a rule record.
const versionLen = 4

// DefaultABI holds the option numbers and limits from the Darwin ipfw headers.
// RuleSize is left unset since it depends on the kernel build.
var DefaultABI = ABI{
	APIVersion: 20,
	IfNameMax:  10,
	OptAdd:     40,
	OptDel:     41,
	OptGet:     44,
}

// Validate checks that the ABI can be used to talk to a kernel.
func (a ABI) Validate() error {
	if a.RuleSize < versionLen {
		return fmt.Errorf("%w: rule size %d is too small to hold the version field", ErrInvalidArgument, a.RuleSize)
	}
	if a.OptAdd <= 0 || a.OptDel <= 0 || a.OptGet <= 0 {
		return fmt.Errorf("%w: socket option numbers must be positive (add=%d del=%d get=%d)",
			ErrInvalidArgument, a.OptAdd, a.OptDel, a.OptGet)
	}
	if a.IfNameMax < 2 {
		return fmt.Errorf("%w: interface name limit %d is below the minimum name length", ErrInvalidArgument, a.IfNameMax)
	}
	return nil
}

// StampVersion writes the API version into the leading field of rec.
func (a ABI) StampVersion(rec []byte) {
	if len(rec) < versionLen {
		return
	}
	binary.NativeEndian.PutUint32(rec[:versionLen], a.APIVersion)
}

// RecordVersion returns the version field of a raw rule record.
func RecordVersion(rec []byte) (uint32, bool) {
	if len(rec) < versionLen {
		return 0, false
	}
	return binary.NativeEndian.Uint32(rec[:versionLen]), true
}
