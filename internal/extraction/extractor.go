package extraction

import (
	"context"
	"fmt"

	"github.com/jonathan/job-tracker/internal/llm"
)

// Extractor runs the reduce -> prompt -> generate -> parse sequence against
// a generative-AI collaborator.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an Extractor backed by the given LLM client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractFromHTML reduces HTML to visible text and asks the model for the
// three job-posting fields.
//
// Failure semantics: a collaborator failure returns a nil result with an
// error ("no data"); a successful call with empty fields returns the fields
// as-is ("data with empty fields"); callers treat the two differently.
// ErrInvalidPosting is returned unwrapped so callers can match on it.
func (e *Extractor) ExtractFromHTML(ctx context.Context, html string) (*Fields, error) {
	visibleText := ReduceHTMLToText(html)

	prompt := BuildPrompt(visibleText)
	response, err := e.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction model call failed: %w", err)
	}

	fields, err := ParseFields(llm.CleanResponseLine(response))
	if err != nil {
		return nil, err
	}
	return &fields, nil
}
