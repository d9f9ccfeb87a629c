package ipfw_test

import (
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"ipfwctl/ipfw"
)

func TestValidateProtocol(t *testing.T) {
	require.NoError(t, ipfw.ValidateProtocol(unix.IPPROTO_TCP))
	require.NoError(t, ipfw.ValidateProtocol(unix.IPPROTO_UDP))

	for _, p := range []int{0, unix.IPPROTO_ICMP, 47, 255, -1} {
		assert.ErrorIs(t, ipfw.ValidateProtocol(p), ipfw.ErrInvalidProtocol, "protocol %d", p)
	}
}

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		iface   string
		wantErr bool
	}{
		{name: "absent", iface: "", wantErr: true},
		{name: "single character", iface: "a", wantErr: true},
		{name: "shortest", iface: "lo", wantErr: false},
		{name: "typical", iface: "eth0", wantErr: false},
		{name: "at limit", iface: strings.Repeat("x", ipfw.DefaultABI.IfNameMax), wantErr: false},
		{name: "over limit", iface: strings.Repeat("x", ipfw.DefaultABI.IfNameMax+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ipfw.ValidateInterfaceName(tt.iface)
			if tt.wantErr {
				assert.ErrorIs(t, err, ipfw.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInterfaceNameABILimit(t *testing.T) {
	abi := ipfw.DefaultABI
	abi.IfNameMax = 16

	assert.NoError(t, abi.ValidateInterfaceName("bridge0123456789"))
	assert.Error(t, abi.ValidateInterfaceName("bridge01234567890"))
}

func TestABIValidate(t *testing.T) {
	abi := ipfw.DefaultABI
	assert.ErrorIs(t, abi.Validate(), ipfw.ErrInvalidArgument, "rule size is unset by default")

	abi.RuleSize = 128
	assert.NoError(t, abi.Validate())

	abi.OptGet = 0
	assert.Error(t, abi.Validate())
}

func TestStampVersion(t *testing.T) {
	rec := make([]byte, 8)
	ipfw.DefaultABI.StampVersion(rec)

	v, ok := ipfw.RecordVersion(rec)
	require.True(t, ok)
	assert.Equal(t, ipfw.DefaultABI.APIVersion, v)

	_, ok = ipfw.RecordVersion([]byte{1, 2})
	assert.False(t, ok)
}

func TestParseStrategies(t *testing.T) {
	s, err := ipfw.ParseStrategies("auto")
	require.NoError(t, err)
	assert.Equal(t, ipfw.DefaultStrategies(), s)

	s, err = ipfw.ParseStrategies("DGRAM")
	require.NoError(t, err)
	assert.Equal(t, []ipfw.Strategy{ipfw.StrategyDatagram}, s)

	_, err = ipfw.ParseStrategies("netlink")
	assert.Error(t, err)
}

func TestValidatorsLogComponent(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	require.Error(t, ipfw.ValidateProtocol(47))
	require.Error(t, ipfw.ValidateInterfaceName(""))
	require.Error(t, ipfw.ValidateInterfaceName("a"))

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, log.ErrorLevel, e.Level)
		assert.Equal(t, "ipfw", e.Data["component"])
	}
	assert.Equal(t, 47, entries[0].Data["protocol"])
	assert.Equal(t, "a", entries[2].Data["interface"])
}
