package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/extraction"
	"github.com/jonathan/job-tracker/internal/fetch"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) GenerateContent(context.Context, string) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Close() error { return nil }

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleFetchJob(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>posting</body></html>"))
	}))
	defer ts.Close()

	s := &Server{fetcher: fetch.New(nil)}

	rec := postJSON(t, s.handleFetchJob, `{"url":"`+ts.URL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FetchJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "posting")
}

func TestHandleFetchJob_BadRequests(t *testing.T) {
	s := &Server{fetcher: fetch.New(nil)}

	assert.Equal(t, http.StatusBadRequest, postJSON(t, s.handleFetchJob, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(t, s.handleFetchJob, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(t, s.handleFetchJob, `{"url":"not a url"}`).Code)
}

func TestHandleFetchJob_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	s := &Server{fetcher: fetch.New(nil)}

	rec := postJSON(t, s.handleFetchJob, `{"url":"`+ts.URL+`"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleExtractJobInfo(t *testing.T) {
	s := &Server{extractor: extraction.NewExtractor(&stubLLM{response: "Engineer, Acme, Berlin"})}

	rec := postJSON(t, s.handleExtractJobInfo, `{"html":"<body><p>We are hiring</p></body>"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var fields extraction.Fields
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, extraction.Fields{Title: "Engineer", Company: "Acme", Location: "Berlin"}, fields)
}

func TestHandleExtractJobInfo_MissingHTML(t *testing.T) {
	s := &Server{extractor: extraction.NewExtractor(&stubLLM{})}

	rec := postJSON(t, s.handleExtractJobInfo, `{"html":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractJobInfo_NoAPIKey(t *testing.T) {
	s := &Server{} // extractor never configured

	rec := postJSON(t, s.handleExtractJobInfo, `{"html":"<body>x</body>"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "GEMINI_API_KEY")
}

func TestHandleExtractJobInfo_InvalidPosting(t *testing.T) {
	s := &Server{extractor: extraction.NewExtractor(&stubLLM{response: "Invalid job posting"})}

	rec := postJSON(t, s.handleExtractJobInfo, `{"html":"<body>cat pictures</body>"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleExtractJobInfo_ModelFailure(t *testing.T) {
	s := &Server{extractor: extraction.NewExtractor(&stubLLM{err: assert.AnError})}

	rec := postJSON(t, s.handleExtractJobInfo, `{"html":"<body>posting</body>"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleImportApplication_Unauthenticated(t *testing.T) {
	s := &Server{}

	rec := postJSON(t, s.handleImportApplication, `{"url":"https://example.com/jobs/1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
