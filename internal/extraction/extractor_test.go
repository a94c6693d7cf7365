package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory llm.Client that records the prompt it received.
type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

const postingHTML = `<html><body>
<script>analytics()</script>
<h1>Backend   Engineer</h1>
<p>Acme Corp - Berlin</p>
</body></html>`

func TestExtractFromHTML(t *testing.T) {
	client := &fakeClient{response: "Backend Engineer, Acme Corp, Berlin"}
	extractor := NewExtractor(client)

	fields, err := extractor.ExtractFromHTML(context.Background(), postingHTML)
	require.NoError(t, err)
	assert.Equal(t, &Fields{Title: "Backend Engineer", Company: "Acme Corp", Location: "Berlin"}, fields)

	// The prompt carries reduced text, not markup.
	assert.Contains(t, client.prompt, "Backend Engineer")
	assert.NotContains(t, client.prompt, "<h1>")
	assert.NotContains(t, client.prompt, "analytics()")
}

func TestExtractFromHTML_CleansFencedResponse(t *testing.T) {
	client := &fakeClient{response: "```\nBackend Engineer, Acme Corp, Berlin\n```"}
	extractor := NewExtractor(client)

	fields, err := extractor.ExtractFromHTML(context.Background(), postingHTML)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", fields.Title)
}

func TestExtractFromHTML_ModelFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	extractor := NewExtractor(client)

	fields, err := extractor.ExtractFromHTML(context.Background(), postingHTML)
	require.Error(t, err)
	assert.Nil(t, fields, "a failed call must not return partial data")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExtractFromHTML_InvalidPosting(t *testing.T) {
	client := &fakeClient{response: "Invalid job posting"}
	extractor := NewExtractor(client)

	fields, err := extractor.ExtractFromHTML(context.Background(), "<body><p>My holiday photos</p></body>")
	assert.ErrorIs(t, err, ErrInvalidPosting)
	assert.Nil(t, fields)
}

func TestExtractFromHTML_PartialFields(t *testing.T) {
	client := &fakeClient{response: "Backend Engineer, ,"}
	extractor := NewExtractor(client)

	fields, err := extractor.ExtractFromHTML(context.Background(), postingHTML)
	require.NoError(t, err, "empty fields are data, not an error")
	assert.True(t, fields.Partial())
	assert.Equal(t, "Backend Engineer", fields.Title)
	assert.Empty(t, fields.Company)
}
