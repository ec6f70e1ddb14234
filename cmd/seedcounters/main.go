// Command seedcounters initializes the document_counters table from existing
// invoice, quotation and note numbers. Run once when migrating a database
// that was numbered by scanning existing documents.
// Usage: go run ./cmd/seedcounters
package main

import (
	"context"
	"fmt"
	"log"

	"hearbill/internal/billing"
	"hearbill/internal/config"
	"hearbill/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	invoiceRepo := postgres.NewInvoiceRepo(db)
	quotationRepo := postgres.NewQuotationRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	counterRepo := postgres.NewCounterRepo(db)

	ctx := context.Background()

	var ids []string
	for _, list := range []func(context.Context) ([]string, error){
		invoiceRepo.ListDocumentIDs,
		quotationRepo.ListDocumentIDs,
		noteRepo.ListDocumentIDs,
	} {
		batch, err := list(ctx)
		if err != nil {
			return fmt.Errorf("listing document IDs: %w", err)
		}
		ids = append(ids, batch...)
	}

	// Track the highest sequence seen per prefix.
	highest := make(map[string]int)
	skipped := 0
	for _, id := range ids {
		prefix, seq, ok := billing.SplitDocumentID(id)
		if !ok {
			log.Printf("WARN: skipping unparseable document ID %q", id)
			skipped++
			continue
		}
		if seq > highest[prefix] {
			highest[prefix] = seq
		}
	}

	for prefix, seq := range highest {
		if err := counterRepo.Seed(ctx, prefix, seq); err != nil {
			return fmt.Errorf("seeding counter %s to %d: %w", prefix, seq, err)
		}
		log.Printf("seeded counter %s to %d", prefix, seq)
	}

	log.Printf("Seed complete: %d counters from %d documents (%d skipped)", len(highest), len(ids), skipped)
	return nil
}
