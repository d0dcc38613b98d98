package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/prosody/internal/config"
	"github.com/pthm/prosody/internal/phonetics"
	"github.com/pthm/prosody/internal/pipeline"
	"github.com/pthm/prosody/internal/poem"
)

func testConfig() *config.Config {
	return &config.Config{
		Phonetics: config.PhoneticsConfig{Source: "prosodic"},
		Rhyme:     config.RhymeConfig{Grouping: "union"},
		Meter:     config.MeterConfig{StressedMarker: "/", UnstressedMarker: "˘"},
		Server:    config.ServerConfig{MaxBodyBytes: 1 << 20},
		CORS: config.CORSConfig{
			AllowedOrigins: "https://poems.example",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type",
		},
	}
}

func newTestServer(t *testing.T, src phonetics.Source) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	a, err := pipeline.New(cfg, src, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(New(a, cfg, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

type analyzeResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Lines int    `json:"lines"`
	Rhyme struct {
		Status string `json:"status"`
		Scheme string `json:"scheme"`
	} `json:"rhyme"`
	Meter []struct {
		FullMeter string `json:"full_meter"`
	} `json:"meter"`
	Form *struct {
		Form struct {
			Name string `json:"name"`
		} `json:"form"`
	} `json:"form"`
	Error string `json:"error"`
}

func post(t *testing.T, url, body string) (*http.Response, analyzeResponse) {
	t.Helper()
	resp, err := http.Post(url+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out analyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestAnalyzeDocument(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, out := post(t, srv.URL, `{"document": {
		"title": "Couplet",
		"stanzas": [{"lines": [
			{"text": "one", "foot_type": "iambic", "foot_count": 5},
			{"text": "two", "foot_type": "iambic", "foot_count": 5}
		]}],
		"pairs": [{"a": 1, "b": 2}]
	}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "Couplet", out.Title)
	assert.Equal(t, 2, out.Lines)
	assert.Equal(t, "AA", out.Rhyme.Scheme)
	require.NotNil(t, out.Form)
	assert.Equal(t, "heroic-couplet", out.Form.Form.Name)
}

func TestAnalyzeText(t *testing.T) {
	p := &poem.Poem{Stanzas: []poem.Stanza{{Lines: []*poem.Line{
		{Text: "a line", Parseable: true, FootType: "trochaic", FootCount: poem.IntPtr(4)},
	}}}}
	p.Renumber()
	srv := newTestServer(t, phonetics.Static{Poem: p})

	resp, out := post(t, srv.URL, `{"text": "a line", "title": "Mine"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mine", out.Title)
	assert.Equal(t, "no_rhymes", out.Rhyme.Status)
	assert.Equal(t, "None", out.Rhyme.Scheme)
	require.Len(t, out.Meter, 1)
	assert.Equal(t, "trochaic tetrameter", out.Meter[0].FullMeter)
}

func TestAnalyzeErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"malformed", `{"text":`, http.StatusBadRequest, "body must be JSON"},
		{"empty", `{}`, http.StatusBadRequest, "body must be JSON"},
		{"invalid document", `{"document": {"stanzas": [{"lines": [{"text": "a"}]}], "pairs": [{"a": 1, "b": 5}]}}`,
			http.StatusUnprocessableEntity, "out of range"},
		{"no source for text", `{"text": "a line"}`, http.StatusServiceUnavailable, "no phonetic source"},
		{"blank text", `{"text": "  \n "}`, http.StatusBadRequest, "body must be JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, srv.URL, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, out.Error, tt.errMsg)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/analyze"},
		{http.MethodPost, "/api/forms"},
		{http.MethodDelete, "/healthz"},
	} {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, tc.path)
	}
}

func TestForms(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/forms")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Forms []struct {
			Name   string `json:"name"`
			Scheme string `json:"scheme"`
		} `json:"forms"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Forms)

	var names []string
	for _, f := range out.Forms {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "shakespearean-sonnet")
	assert.IsNonDecreasing(t, names)
}

func TestHealthAndCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://poems.example")
	req.Header.Set("X-Request-ID", "fixed-id")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://poems.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Request-ID"))

	var out healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)

	// preflight from an unknown origin gets no allow header
	pre, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/analyze", nil)
	require.NoError(t, err)
	pre.Header.Set("Origin", "https://evil.example")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	presp, err := http.DefaultClient.Do(pre)
	require.NoError(t, err)
	presp.Body.Close()
	assert.Empty(t, presp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeShutsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	a, err := pipeline.New(cfg, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(a, cfg, nil).ListenAndServe(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
