package ipfw

import (
	"fmt"
	"math"
)

// RuleSet is a growable buffer of fixed-size rule records filled by
// Channel.FetchRuleset. The zero value is an empty set ready for use.
type RuleSet struct {
	buf   []byte
	size  int
	count int
}

// Len returns the number of valid records.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return rs.count
}

// Cap returns the number of records the current buffer can hold.
func (rs *RuleSet) Cap() int {
	if rs == nil || rs.size == 0 {
		return 0
	}
	return len(rs.buf) / rs.size
}

// RecordSize returns the size of one record in bytes, or 0 before the first
// fetch.
func (rs *RuleSet) RecordSize() int {
	if rs == nil {
		return 0
	}
	return rs.size
}

// Record returns the i-th valid record. The slice aliases the buffer and is
// invalidated by the next fetch or Release.
func (rs *RuleSet) Record(i int) []byte {
	if i < 0 || i >= rs.Len() {
		return nil
	}
	off := i * rs.size
	return rs.buf[off : off+rs.size : off+rs.size]
}

// Records returns all valid records, aliasing the buffer.
func (rs *RuleSet) Records() [][]byte {
	out := make([][]byte, 0, rs.Len())
	for i := 0; i < rs.Len(); i++ {
		out = append(out, rs.Record(i))
	}
	return out
}

// Bytes returns the valid records as one contiguous block.
func (rs *RuleSet) Bytes() []byte {
	if rs.Len() == 0 {
		return nil
	}
	return rs.buf[:rs.count*rs.size]
}

// Release drops the backing storage and resets the set to empty. It is safe
// to call more than once.
func (rs *RuleSet) Release() {
	if rs == nil {
		return
	}
	rs.buf = nil
	rs.size = 0
	rs.count = 0
}

// grow resizes the buffer to exactly records*size bytes while keeping the
// existing contents. The backing array never shrinks during a fetch sequence.
func (rs *RuleSet) grow(records, size, maxRecords int) error {
	if rs.size != 0 && rs.size != size {
		return fmt.Errorf("%w: ruleset holds %d byte records, asked for %d", ErrInvalidArgument, rs.size, size)
	}
	if maxRecords > 0 && records > maxRecords {
		return fmt.Errorf("%w: %d records exceeds the limit of %d", ErrAllocation, records, maxRecords)
	}
	if size <= 0 || records > math.MaxInt32/size {
		return fmt.Errorf("%w: %d records of %d bytes overflows the buffer size", ErrAllocation, records, size)
	}

	need := records * size
	if need <= cap(rs.buf) {
		rs.buf = rs.buf[:need]
	} else {
		buf := make([]byte, need)
		copy(buf, rs.buf)
		rs.buf = buf
	}
	rs.size = size
	if rs.count > records {
		rs.count = records
	}
	return nil
}
