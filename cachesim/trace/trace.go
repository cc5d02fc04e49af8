// Package trace reads and writes the .din trace format used throughout the
// cache-hierarchy benchmarks: one access per line, "<kind-decimal>
// <address-hex>", kind being 0 (read data), 1 (write data), or 2 (read
// instruction), with no "0x" prefix on the address.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cachesim/cachesim/cachesim"
)

// ParseDin reads a .din trace from r, returning one AccessRecord per
// non-blank line in file order. A malformed record fails the entire parse
// with an error naming the offending line number, rather than skipping it.
func ParseDin(r io.Reader) ([]cachesim.AccessRecord, error) {
	var records []cachesim.AccessRecord

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("trace: line %d: expected 2 fields, got %d", lineNo, len(fields))
		}

		kindVal, err := strconv.ParseUint(fields[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: invalid access kind %q: %w", lineNo, fields[0], err)
		}
		kind := cachesim.AccessKind(kindVal)
		if kind != cachesim.ReadData && kind != cachesim.WriteData && kind != cachesim.ReadInst {
			return nil, fmt.Errorf("trace: line %d: unrecognized access kind %d", lineNo, kindVal)
		}

		address, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: invalid address %q: %w", lineNo, fields[1], err)
		}

		records = append(records, cachesim.AccessRecord{Kind: kind, Address: address})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: reading trace: %w", err)
	}

	return records, nil
}

// WriteDin writes records to w in .din format, one "<kind-decimal>
// <address-hex>" line per record, matching the layout ParseDin reads back.
func WriteDin(w io.Writer, records []cachesim.AccessRecord) error {
	buffered := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := fmt.Fprintf(buffered, "%d %x\n", uint8(rec.Kind), rec.Address); err != nil {
			return fmt.Errorf("trace: writing record: %w", err)
		}
	}
	return buffered.Flush()
}

// WriteCumulativeEnergyCSV writes one cumulative-energy value per line: the
// running sum of perAccessTotals, matching the original tool's
// np.cumsum(np.sum(report('Energy'), axis=0)) output column.
func WriteCumulativeEnergyCSV(w io.Writer, perAccessTotals []float64) error {
	buffered := bufio.NewWriter(w)
	running := 0.0
	for _, total := range perAccessTotals {
		running += total
		if _, err := fmt.Fprintf(buffered, "%s\n", strconv.FormatFloat(running, 'g', -1, 64)); err != nil {
			return fmt.Errorf("trace: writing cumulative energy: %w", err)
		}
	}
	return buffered.Flush()
}
