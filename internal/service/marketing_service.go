package service

import (
	"context"
	"fmt"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// PromoCopyInput is the DTO for promotional copy requests.
type PromoCopyInput struct {
	Product  string `json:"product" binding:"required"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

// MarketingService generates marketing text from clinic data.
type MarketingService interface {
	PromoCopy(ctx context.Context, input PromoCopyInput) (string, error)
	StockTrendSummary(ctx context.Context) (string, error)
}

type marketingService struct {
	copywriter port.Copywriter
	deviceRepo port.DeviceRepository
}

// NewMarketingService creates a new MarketingService implementation.
func NewMarketingService(copywriter port.Copywriter, deviceRepo port.DeviceRepository) MarketingService {
	return &marketingService{
		copywriter: copywriter,
		deviceRepo: deviceRepo,
	}
}

func (s *marketingService) PromoCopy(ctx context.Context, input PromoCopyInput) (string, error) {
	audience := input.Audience
	if audience == "" {
		audience = "adults with age-related hearing loss"
	}
	tone := input.Tone
	if tone == "" {
		tone = "warm and reassuring"
	}
	return s.copywriter.PromoCopy(ctx, input.Product, audience, tone)
}

// StockTrendSummary summarizes per-model availability and sales for the
// clinic owner. Aggregation is by brand and model across serialized units.
func (s *marketingService) StockTrendSummary(ctx context.Context) (string, error) {
	devices, _, err := s.deviceRepo.List(ctx, "", "", 0, 10000)
	if err != nil {
		return "", fmt.Errorf("marketingService.StockTrendSummary: %w", err)
	}

	type key struct{ brand, model string }
	agg := make(map[key]*port.StockLine)
	order := make([]key, 0)
	for _, d := range devices {
		k := key{d.Brand, d.Model}
		line, ok := agg[k]
		if !ok {
			line = &port.StockLine{Brand: d.Brand, Model: d.Model}
			agg[k] = line
			order = append(order, k)
		}
		switch d.Status {
		case domain.DeviceSold:
			line.Sold++
		case domain.DeviceAvailable:
			line.Available++
		}
	}

	lines := make([]port.StockLine, 0, len(order))
	for _, k := range order {
		lines = append(lines, *agg[k])
	}
	return s.copywriter.StockTrendSummary(ctx, lines)
}
