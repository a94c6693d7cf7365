package extraction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/fetch"
)

func TestPipeline_Run(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1><p>Acme, Berlin</p></body></html>"))
	}))
	defer ts.Close()

	client := &fakeClient{response: "Backend Engineer, Acme, Berlin"}
	pipeline := NewPipeline(fetch.New(nil), NewExtractor(client))

	fields, err := pipeline.Run(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, &Fields{Title: "Backend Engineer", Company: "Acme", Location: "Berlin"}, fields)
}

func TestPipeline_Run_FetchStageError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	pipeline := NewPipeline(fetch.New(nil), NewExtractor(&fakeClient{}))

	fields, err := pipeline.Run(context.Background(), ts.URL)
	assert.Nil(t, fields)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetch, stageErr.Stage)
	assert.Equal(t, ts.URL, stageErr.URL)
}

func TestPipeline_Run_ExtractStageError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<body><p>posting</p></body>"))
	}))
	defer ts.Close()

	client := &fakeClient{err: assert.AnError}
	pipeline := NewPipeline(fetch.New(nil), NewExtractor(client))

	fields, err := pipeline.Run(context.Background(), ts.URL)
	assert.Nil(t, fields)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExtract, stageErr.Stage)
	assert.ErrorIs(t, err, assert.AnError, "cause should stay reachable through unwrapping")
}

func TestPipeline_Run_InvalidPostingPassesThrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<body><p>cat pictures</p></body>"))
	}))
	defer ts.Close()

	client := &fakeClient{response: "Invalid job posting"}
	pipeline := NewPipeline(fetch.New(nil), NewExtractor(client))

	fields, err := pipeline.Run(context.Background(), ts.URL)
	assert.Nil(t, fields)
	assert.ErrorIs(t, err, ErrInvalidPosting)

	var stageErr *StageError
	assert.False(t, errors.As(err, &stageErr), "sentinel must not be wrapped in a stage error")
}
