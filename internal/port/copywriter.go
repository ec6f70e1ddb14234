package port

import "context"

// StockLine is one inventory aggregate fed into a trend summary.
type StockLine struct {
	Brand     string
	Model     string
	Available int
	Sold      int
}

// Copywriter generates marketing text from clinic data. Implementations call
// an external generative service; the core never depends on one.
type Copywriter interface {
	PromoCopy(ctx context.Context, product, audience, tone string) (string, error)
	StockTrendSummary(ctx context.Context, lines []StockLine) (string, error)
}
