package rules

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"ipfwctl/ipfw"
)

// headLen is how many leading bytes of a record are shown in listings
const headLen = 16

// Summary describes one raw rule record for display
type Summary struct {
	Index   int    `yaml:"index"`
	Version uint32 `yaml:"version"`
	Size    int    `yaml:"size"`
	Digest  string `yaml:"digest"`
	Head    string `yaml:"head"`
}

// SplitRecords cuts a block of concatenated rule records into size-byte records
func SplitRecords(data []byte, size int) ([][]byte, error) {
	if size < 4 {
		return nil, fmt.Errorf("invalid rule size %d", size)
	}
	if len(data)%size != 0 {
		return nil, fmt.Errorf("rule data is %d bytes, not a multiple of the %d byte rule size", len(data), size)
	}
	records := make([][]byte, 0, len(data)/size)
	for off := 0; off < len(data); off += size {
		records = append(records, data[off:off+size:off+size])
	}
	return records, nil
}

// LoadRuleFile reads a binary file of concatenated rule records
func LoadRuleFile(path string, size int) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %v", err)
	}
	records, err := SplitRecords(data, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return records, nil
}

// WriteRuleFile stores records back to back in path
func WriteRuleFile(path string, records [][]byte) error {
	var buf bytes.Buffer
	for _, r := range records {
		buf.Write(r)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write rule file: %v", err)
	}
	return nil
}

// VersionMismatches returns the indexes of records whose version field is not want
func VersionMismatches(records [][]byte, want uint32) []int {
	var bad []int
	for i, r := range records {
		if v, ok := ipfw.RecordVersion(r); !ok || v != want {
			bad = append(bad, i)
		}
	}
	return bad
}

// Digest returns a short stable fingerprint of a record
func Digest(rec []byte) string {
	sum := sha256.Sum256(rec)
	return hex.EncodeToString(sum[:8])
}

// Summarize builds display summaries for records
func Summarize(records [][]byte) []Summary {
	out := make([]Summary, 0, len(records))
	for i, r := range records {
		v, _ := ipfw.RecordVersion(r)
		head := r
		if len(head) > headLen {
			head = head[:headLen]
		}
		out = append(out, Summary{
			Index:   i,
			Version: v,
			Size:    len(r),
			Digest:  Digest(r),
			Head:    hex.EncodeToString(head),
		})
	}
	return out
}

// AuditResult holds the result of the rule comparison, including differences.
type AuditResult struct {
	Match        bool     // True if rules match exactly
	MissingRules [][]byte // Rules in config but not enforced
	ExtraRules   [][]byte // Rules enforced but not in config
}

// CompareMultiSets compares two multisets of binary rules, returning an AuditResult.
// Counts duplicates and is order-invariant.
func CompareMultiSets(configRules, enforcedRules [][]byte) AuditResult {
	configMap := make(map[string]int)
	for _, rule := range configRules {
		configMap[string(rule)]++
	}

	enforcedMap := make(map[string]int)
	for _, rule := range enforcedRules {
		enforcedMap[string(rule)]++
	}

	var missing, extra [][]byte
	for key, configCount := range configMap {
		enforcedCount := enforcedMap[key]
		for i := enforcedCount; i < configCount; i++ {
			missing = append(missing, []byte(key))
		}
		for i := configCount; i < enforcedCount; i++ {
			extra = append(extra, []byte(key))
		}
	}

	// Rules enforced but absent from config
	for key, enforcedCount := range enforcedMap {
		if _, exists := configMap[key]; !exists {
			for i := 0; i < enforcedCount; i++ {
				extra = append(extra, []byte(key))
			}
		}
	}

	sortRecords(missing)
	sortRecords(extra)
	return AuditResult{
		Match:        len(missing) == 0 && len(extra) == 0,
		MissingRules: missing,
		ExtraRules:   extra,
	}
}

func sortRecords(records [][]byte) {
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i], records[j]) < 0
	})
}
