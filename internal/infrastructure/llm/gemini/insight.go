package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"google.golang.org/genai"
)

type insightPayload struct {
	SalaryRanges      []insight.SalaryRange `json:"salaryRanges"`
	GrowthRate        float64               `json:"growthRate"`
	DemandLevel       string                `json:"demandLevel"`
	TopSkills         []string              `json:"topSkills"`
	MarketOutlook     string                `json:"marketOutlook"`
	KeyTrends         []string              `json:"keyTrends"`
	RecommendedSkills []string              `json:"recommendedSkills"`
}

// Generate asks the model for an industry overview. Enum values are returned
// as produced; normalization happens in insight.Build.
func (c *Client) Generate(ctx context.Context, industry string) (insight.Generated, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return insight.Generated{}, fmt.Errorf("industry is required")
	}

	text, err := c.complete(ctx, "industry_insight", insightPrompt(industry), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return insight.Generated{}, err
	}

	var payload insightPayload
	if err := sonic.UnmarshalString(stripCodeFence(text), &payload); err != nil {
		return insight.Generated{}, fmt.Errorf("decode gemini insight for %s: %w", industry, err)
	}
	if strings.TrimSpace(payload.DemandLevel) == "" || strings.TrimSpace(payload.MarketOutlook) == "" {
		return insight.Generated{}, fmt.Errorf("gemini insight for %s is missing demandLevel or marketOutlook", industry)
	}

	return insight.Generated{
		SalaryRanges:      payload.SalaryRanges,
		GrowthRate:        payload.GrowthRate,
		DemandLevel:       payload.DemandLevel,
		TopSkills:         payload.TopSkills,
		MarketOutlook:     payload.MarketOutlook,
		KeyTrends:         payload.KeyTrends,
		RecommendedSkills: payload.RecommendedSkills,
	}, nil
}

// stripCodeFence removes a surrounding markdown fence such as ```json.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
