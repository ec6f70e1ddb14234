// Package gemini implements the Copywriter port on Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hearbill/internal/config"
	"hearbill/internal/port"
)

type copywriter struct {
	client *genai.Client
	model  string
	clinic string
}

// NewCopywriter creates a Gemini-backed Copywriter. Close releases the
// underlying API client.
func NewCopywriter(ctx context.Context, cfg config.AIConfig, clinicName string) (port.Copywriter, func(), error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, nil, fmt.Errorf("creating genai client: %w", err)
	}
	cw := &copywriter{
		client: client,
		model:  cfg.Model,
		clinic: clinicName,
	}
	return cw, func() { _ = client.Close() }, nil
}

func (c *copywriter) PromoCopy(ctx context.Context, product, audience, tone string) (string, error) {
	prompt := fmt.Sprintf(
		`You write short marketing copy for %s, a hearing aid clinic in India.
Write a promotional message (under 120 words) for the product %q.
Audience: %s. Tone: %s.
Do not invent prices, discounts or medical claims. Plain text only, no markdown.`,
		c.clinic, product, audience, tone)

	return c.generate(ctx, prompt)
}

func (c *copywriter) StockTrendSummary(ctx context.Context, lines []port.StockLine) (string, error) {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s %s: %d available, %d sold\n", l.Brand, l.Model, l.Available, l.Sold)
	}

	prompt := fmt.Sprintf(
		`You are an analyst for %s, a hearing aid clinic in India.
Given the inventory figures below, write a short summary (under 150 words)
of which models are moving, which are overstocked, and what to reorder.
Plain text only, no markdown.

%s`, c.clinic, b.String())

	return c.generate(ctx, prompt)
}

func (c *copywriter) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}
