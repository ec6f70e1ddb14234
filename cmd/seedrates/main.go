// Command seedrates converts a GST rate master Excel file into a SQL seed
// file for the gst_rates table. The sheet is expected to carry HSN code,
// description and rate columns; hearing aids (HSN 9021) are nil-rated while
// batteries and accessories attract 18% or 28%.
// Usage: go run ./cmd/seedrates [rate-master.xlsx]
// Output: db/seeds/gst_rates.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type rateEntry struct {
	hsnCode     string
	description string
	ratePercent float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "rate-master.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/gst_rates.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	seen := make(map[string]bool)
	var entries []rateEntry

	// Columns: A=HSN code, B=description, C=GST rate. Row 0 is the header.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		code := strings.TrimSpace(cellVal(row, 0))
		if code == "" || !isNumeric(code) {
			continue
		}

		rateStr := strings.TrimSpace(strings.TrimSuffix(cellVal(row, 2), "%"))
		var rate float64
		if lower := strings.ToLower(rateStr); lower == "exempt" || lower == "nil" {
			rate = 0
		} else if _, serr := fmt.Sscanf(rateStr, "%f", &rate); serr != nil {
			continue
		}

		key := fmt.Sprintf("%s|%.2f", code, rate)
		if seen[key] {
			continue
		}
		seen[key] = true

		entries = append(entries, rateEntry{
			hsnCode:     code,
			description: strings.TrimSpace(cellVal(row, 1)),
			ratePercent: rate,
		})
	}

	if len(entries) == 0 {
		return fmt.Errorf("no rate entries parsed from %s", xlsxPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- GST rate seed data generated from %s.\n-- %d entries in batches of %d.\nBEGIN;\n\n",
		xlsxPath, len(entries), batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

func writeBatch(out *os.File, batch []rateEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO gst_rates (hsn_code, description, rate_percent) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %.2f)",
			escapeSQL(e.hsnCode), escapeSQL(e.description), e.ratePercent)
	}

	b.WriteString("\nON CONFLICT (hsn_code) DO UPDATE SET description = EXCLUDED.description, rate_percent = EXCLUDED.rate_percent;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
