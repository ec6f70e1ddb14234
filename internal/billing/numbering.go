package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hearbill/internal/domain"
)

// seqWidth is the zero-padded width of the numeric suffix.
const seqWidth = 3

// CalendarPeriod returns the 4-digit calendar-year period for t, e.g. "2024".
func CalendarPeriod(t time.Time) string {
	return strconv.Itoa(t.Year())
}

// FinancialYearPeriod returns the Indian financial-year period for t as a
// 2-digit pair, e.g. "24-25" for any date from April 2024 through March 2025.
func FinancialYearPeriod(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// DocumentPrefix builds the "<PREFIX>-<PERIOD>-" portion of a document ID.
func DocumentPrefix(kind, period string) string {
	return kind + "-" + period + "-"
}

// NextDocumentID computes the next sequential document ID for the given
// prefix by scanning the existing ID set: filter to IDs starting with the
// prefix, parse the numeric suffix after the last '-', take the maximum and
// increment. Malformed suffixes count as 0 rather than failing. An empty
// existing set yields "<prefix>001".
//
// This is the scan-and-increment policy of the original ledger and is only
// safe for single-writer use (backfills, offline tooling). Concurrent
// creation paths must allocate through DocumentCounterRepository instead.
func NextDocumentID(existingIDs []string, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: document prefix must not be empty", domain.ErrInvalidArgument)
	}

	max := 0
	for _, id := range existingIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		seq := parseSequence(id)
		if seq > max {
			max = seq
		}
	}
	return FormatDocumentID(prefix, max+1), nil
}

// FormatDocumentID concatenates a prefix and a zero-padded sequence number.
func FormatDocumentID(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, seqWidth, seq)
}

// ParseSequence extracts the numeric suffix after the last '-' of a document
// ID. Malformed or non-numeric suffixes yield 0.
func ParseSequence(id string) int {
	return parseSequence(id)
}

func parseSequence(id string) int {
	idx := strings.LastIndex(id, "-")
	if idx < 0 || idx == len(id)-1 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SplitDocumentID splits "<PREFIX>-<PERIOD>-<SEQ>" into its prefix+period
// part (including the trailing '-') and its sequence number. Used when
// seeding counters from already-issued documents.
func SplitDocumentID(id string) (prefix string, seq int, ok bool) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 || idx == len(id)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:idx+1], n, true
}
