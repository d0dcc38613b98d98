// Package phonetics adapts external phonetic parsers into annotated poems.
// Sources do all syllabification, stress assignment and rhyme pairing; the
// rest of the program only reads their output.
package phonetics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pthm/prosody/internal/poem"
)

var (
	// ErrNoAPIKey is returned when the LLM source has no API key
	ErrNoAPIKey = errors.New("phonetics: missing ANTHROPIC_API_KEY")
	// ErrEmptyResponse is returned when a source answers with nothing usable
	ErrEmptyResponse = errors.New("phonetics: empty response")
	// ErrEmptyText is returned when asked to annotate blank text
	ErrEmptyText = errors.New("phonetics: no text to annotate")
)

// Source annotates raw poem text
type Source interface {
	Annotate(ctx context.Context, text string) (*poem.Poem, error)
}

// Name values for configured sources
const (
	SourceProsodic = "prosodic"
	SourceLLM      = "llm"
)

// ExtractJSON attempts to extract JSON from a response that might be wrapped in markdown
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}

	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		// Skip any language identifier
		if nlIdx := strings.Index(s[start:], "\n"); nlIdx != -1 {
			start += nlIdx + 1
		}
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}

// truncateForError truncates a string for inclusion in error messages
func truncateForError(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

// Options selects and configures a source
type Options struct {
	Source                string
	URL                   string
	Timeout               time.Duration
	ImproveVowelSyllables bool
	Model                 string
	APIKey                string
	CacheDir              string
	NoCache               bool
}

// Namespace names the source and every option that changes its
// annotations, for use as a cache namespace
func (o Options) Namespace() string {
	switch o.Source {
	case SourceLLM:
		model := o.Model
		if model == "" {
			model = DefaultLLMModel
		}
		return fmt.Sprintf("%s model=%s", SourceLLM, model)
	default:
		return fmt.Sprintf("%s improve_vowel_syllables=%t", SourceProsodic, o.ImproveVowelSyllables)
	}
}

// New builds the configured source, wrapped in a Cache unless disabled
func New(opts Options, logger *slog.Logger) (Source, error) {
	var src Source
	switch opts.Source {
	case "", SourceProsodic:
		src = NewProsodicClient(opts.URL, opts.Timeout, opts.ImproveVowelSyllables)
	case SourceLLM:
		llm, err := NewLLMSource(opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		src = llm
	default:
		return nil, fmt.Errorf("unknown phonetic source %q (want %s or %s)", opts.Source, SourceProsodic, SourceLLM)
	}

	if opts.NoCache || opts.CacheDir == "" {
		return src, nil
	}
	return NewCache(opts.CacheDir, opts.Namespace(), src, logger), nil
}

// Static is a source that always returns the same annotated poem
type Static struct {
	Poem *poem.Poem
}

// Annotate returns the stored poem
func (s Static) Annotate(ctx context.Context, text string) (*poem.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Poem == nil {
		return nil, ErrEmptyResponse
	}
	return s.Poem, nil
}
