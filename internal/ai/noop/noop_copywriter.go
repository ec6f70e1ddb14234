// Package noop provides a Copywriter for deployments without an AI key.
package noop

import (
	"context"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type noopCopywriter struct{}

// NewCopywriter returns a Copywriter that rejects every request. Used when
// no Gemini API key is configured.
func NewCopywriter() port.Copywriter {
	return &noopCopywriter{}
}

func (n *noopCopywriter) PromoCopy(ctx context.Context, product, audience, tone string) (string, error) {
	return "", domain.ErrCopywriterDisabled
}

func (n *noopCopywriter) StockTrendSummary(ctx context.Context, lines []port.StockLine) (string, error) {
	return "", domain.ErrCopywriterDisabled
}
