package phonetics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pthm/prosody/internal/parser"
	"github.com/pthm/prosody/internal/poem"
	"github.com/pthm/prosody/internal/version"
)

// DefaultProsodicURL is where `prosodic web` listens by default
const DefaultProsodicURL = "http://127.0.0.1:8181"

// ProsodicClient calls a running prosodic web server
type ProsodicClient struct {
	baseURL               string
	improveVowelSyllables bool
	httpClient            *http.Client
}

type parseRequest struct {
	Text                  string `json:"text"`
	ImproveVowelSyllables bool   `json:"improveVowelSyllables"`
}

// NewProsodicClient creates a client for the prosodic server at baseURL
func NewProsodicClient(baseURL string, timeout time.Duration, improveVowelSyllables bool) *ProsodicClient {
	if baseURL == "" {
		baseURL = DefaultProsodicURL
	}
	return &ProsodicClient{
		baseURL:               strings.TrimRight(baseURL, "/"),
		improveVowelSyllables: improveVowelSyllables,
		httpClient:            &http.Client{Timeout: timeout},
	}
}

// Annotate posts the text to /api/parse and decodes the returned document
func (c *ProsodicClient) Annotate(ctx context.Context, text string) (*poem.Poem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(parseRequest{Text: text, ImproveVowelSyllables: c.improveVowelSyllables})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prosodic server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("prosodic server returned %s: %s", resp.Status, truncateForError(strings.TrimSpace(string(msg))))
	}

	doc, err := parser.DecodeJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("prosodic response: %w", err)
	}
	if len(doc.Stanzas) == 0 {
		return nil, ErrEmptyResponse
	}
	return doc.Poem()
}
