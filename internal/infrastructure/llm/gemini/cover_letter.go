package gemini

import (
	"context"
	"fmt"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
)

// Write drafts a markdown cover letter.
func (c *Client) Write(ctx context.Context, req coverletter.Request) (string, error) {
	text, err := c.complete(ctx, "cover_letter", coverLetterPrompt(req), nil)
	if err != nil {
		return "", fmt.Errorf("write cover letter for %s at %s: %w", req.JobTitle, req.CompanyName, err)
	}
	return stripCodeFence(text), nil
}
