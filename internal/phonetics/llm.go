package phonetics

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pthm/prosody/internal/parser"
	"github.com/pthm/prosody/internal/poem"
)

// LLMSource asks Claude to produce the phonetic annotation document
type LLMSource struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// DefaultLLMModel is used when no model is configured
const DefaultLLMModel = string(anthropic.ModelClaude3_5Haiku20241022)

// NewLLMSource creates an LLM-backed source. An empty model selects Haiku.
func NewLLMSource(apiKey, model string, opts ...option.RequestOption) (*LLMSource, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultLLMModel
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &LLMSource{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(model),
		maxTokens: 8000,
	}, nil
}

// Annotate sends the poem to the model and decodes its JSON answer
func (s *LLMSource) Annotate(ctx context.Context, text string) (*poem.Poem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Claude API error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if strings.TrimSpace(responseText) == "" {
		return nil, ErrEmptyResponse
	}

	doc, err := parser.DecodeJSON(strings.NewReader(ExtractJSON(responseText)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w (response: %s)", err, truncateForError(responseText))
	}
	return doc.Poem()
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Scan the following poem as a metrical parser would.

Poem:
%s

Provide a JSON response with the following structure:
{
  "stanzas": [
    {
      "lines": [
        {
          "text": "the line exactly as written",
          "parseable": true,
          "syllables": ["syl", "la", "bles"],
          "stress": "one letter per syllable: s = stressed, w = unstressed",
          "foot_type": "iambic|trochaic|anapestic|dactylic|spondaic|unknown",
          "foot_count": 5,
          "rime": "phonetic rime of the final stressed syllable"
        }
      ]
    }
  ],
  "pairs": [
    {"a": 1, "b": 3, "distance": 0.0}
  ]
}

Stanzas are separated by blank lines in the poem. Pairs list rhyming
lines by 1-based position in the whole poem, the earlier line first,
with a distance between 0 (perfect rhyme) and 1.

Return ONLY the JSON, no other text.`, text)
}
