// Package invoiceid formats and parses invoice identifiers like "INV10042".
package invoiceid

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "INV"

// Format returns an invoice ID for a sequence number.
func Format(seq int) string {
	return fmt.Sprintf("%s%d", prefix, seq)
}

// Parse extracts the sequence number from an invoice ID.
func Parse(id string) (int, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("invalid invoice ID format: %q", id)
	}
	seq, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("invalid sequence in invoice ID %q: %w", id, err)
	}
	return seq, nil
}
