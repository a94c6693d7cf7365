package extraction

import (
	"context"
	"fmt"

	"github.com/jonathan/job-tracker/internal/fetch"
)

// Stage identifies which step of the fetch-then-extract pipeline failed.
type Stage string

// Pipeline stages
const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
)

// StageError wraps a pipeline failure with the stage it occurred in, so
// callers can present distinct messaging for fetch failures versus
// extraction failures.
type StageError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline %s stage failed for %s: %v", e.Stage, e.URL, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline chains the page fetcher and the extractor into the two-phase
// URL -> fields flow. Both phases are single blocking round trips; there is
// no parallelism, and each collaborator applies its own timeout.
type Pipeline struct {
	fetcher   *fetch.Fetcher
	extractor *Extractor
}

// NewPipeline creates a Pipeline from its two collaborators.
func NewPipeline(fetcher *fetch.Fetcher, extractor *Extractor) *Pipeline {
	return &Pipeline{fetcher: fetcher, extractor: extractor}
}

// Run fetches the page at url and extracts the job-posting fields from it.
// Failures carry their stage via StageError, except ErrInvalidPosting which
// is passed through unwrapped for callers to match on.
func (p *Pipeline) Run(ctx context.Context, url string) (*Fields, error) {
	page, err := p.fetcher.Page(ctx, url)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, URL: url, Err: err}
	}

	fields, err := p.extractor.ExtractFromHTML(ctx, page.HTML)
	if err != nil {
		if err == ErrInvalidPosting {
			return nil, err
		}
		return nil, &StageError{Stage: StageExtract, URL: url, Err: err}
	}
	return fields, nil
}
