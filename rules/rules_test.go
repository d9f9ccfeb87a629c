package rules

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(version uint32, id byte) []byte {
	r := make([]byte, 8)
	binary.NativeEndian.PutUint32(r, version)
	r[4] = id
	return r
}

func TestSplitRecords(t *testing.T) {
	data := append(record(20, 1), record(20, 2)...)

	records, err := SplitRecords(data, 8)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, record(20, 2), records[1])

	_, err = SplitRecords(data[:10], 8)
	assert.Error(t, err)

	_, err = SplitRecords(data, 2)
	assert.Error(t, err)

	records, err = SplitRecords(nil, 8)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRuleFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.bin")
	in := [][]byte{record(20, 1), record(20, 2), record(20, 3)}

	require.NoError(t, WriteRuleFile(path, in))
	out, err := LoadRuleFile(path, 8)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = LoadRuleFile(path, 7)
	assert.Error(t, err)
}

func TestVersionMismatches(t *testing.T) {
	records := [][]byte{record(20, 1), record(19, 2), record(20, 3), {1}}
	assert.Equal(t, []int{1, 3}, VersionMismatches(records, 20))
}

func TestSummarize(t *testing.T) {
	s := Summarize([][]byte{record(20, 9)})
	require.Len(t, s, 1)
	assert.Equal(t, 0, s[0].Index)
	assert.Equal(t, uint32(20), s[0].Version)
	assert.Equal(t, 8, s[0].Size)
	assert.Len(t, s[0].Digest, 16)
	assert.Len(t, s[0].Head, 16)
	assert.Equal(t, Digest(record(20, 9)), s[0].Digest)
	assert.NotEqual(t, Digest(record(20, 8)), s[0].Digest)
}

func TestCompareMultiSets(t *testing.T) {
	a, b, c := record(20, 1), record(20, 2), record(20, 3)

	tests := []struct {
		name     string
		config   [][]byte
		enforced [][]byte
		match    bool
		missing  [][]byte
		extra    [][]byte
	}{
		{
			name:     "identical in different order",
			config:   [][]byte{a, b, c},
			enforced: [][]byte{c, a, b},
			match:    true,
		},
		{
			name:     "missing rule",
			config:   [][]byte{a, b},
			enforced: [][]byte{a},
			missing:  [][]byte{b},
		},
		{
			name:     "extra rule",
			config:   [][]byte{a},
			enforced: [][]byte{a, c},
			extra:    [][]byte{c},
		},
		{
			name:     "duplicate counts",
			config:   [][]byte{a, a, b},
			enforced: [][]byte{a, b, b, b},
			missing:  [][]byte{a},
			extra:    [][]byte{b, b},
		},
		{
			name:  "both empty",
			match: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CompareMultiSets(tt.config, tt.enforced)
			assert.Equal(t, tt.match, res.Match)
			assert.Equal(t, tt.missing, res.MissingRules)
			assert.Equal(t, tt.extra, res.ExtraRules)
		})
	}
}
