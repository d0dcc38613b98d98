// Package pipeline wires input loading, phonetic annotation,
// classification, rules and reporting into one analysis run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm/prosody/internal/classify"
	"github.com/pthm/prosody/internal/config"
	"github.com/pthm/prosody/internal/forms"
	"github.com/pthm/prosody/internal/meter"
	"github.com/pthm/prosody/internal/parser"
	"github.com/pthm/prosody/internal/phonetics"
	"github.com/pthm/prosody/internal/poem"
	"github.com/pthm/prosody/internal/reporter"
	"github.com/pthm/prosody/internal/rhyme"
	"github.com/pthm/prosody/internal/rules"
	"github.com/pthm/prosody/internal/ui"
)

// ErrNoSource is returned when a raw poem needs annotating but no phonetic
// source is configured
var ErrNoSource = errors.New("no phonetic source configured for raw poem text")

// Analyzer runs analyses. It is safe for concurrent use once built.
type Analyzer struct {
	source     phonetics.Source
	sourceName string
	classifier *classify.Classifier
	catalog    *forms.Catalog
	registry   *rules.Registry
	logger     *slog.Logger
}

// New builds an Analyzer from configuration. source may be nil when only
// annotated documents will be analyzed.
func New(cfg *config.Config, source phonetics.Source, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	grouping, err := rhyme.ParseGrouping(cfg.Rhyme.Grouping)
	if err != nil {
		return nil, err
	}

	catalog := forms.Builtin()
	if cfg.Forms.File != "" {
		catalog, err = forms.LoadFromFile(cfg.Forms.File)
		if err != nil {
			return nil, fmt.Errorf("load forms: %w", err)
		}
	}

	registry := rules.DefaultRegistry()
	for _, name := range cfg.Rules.Disabled {
		if registry.Get(name) == nil {
			return nil, fmt.Errorf("unknown rule %q in rules.disabled", name)
		}
	}
	registry.Disable(cfg.Rules.Disabled...)

	classifier := classify.New(classify.Options{
		Markers: meter.Markers{
			Stressed:   cfg.Meter.StressedMarker,
			Unstressed: cfg.Meter.UnstressedMarker,
		},
		Resolver: rhyme.Resolver{
			Grouping:    grouping,
			MaxDistance: cfg.Rhyme.MaxDistance,
		},
	}, logger)

	return &Analyzer{
		source:     source,
		sourceName: cfg.Phonetics.Source,
		classifier: classifier,
		catalog:    catalog,
		registry:   registry,
		logger:     logger,
	}, nil
}

// SourceOptions maps configuration onto phonetic source options
func SourceOptions(cfg *config.Config) phonetics.Options {
	cacheDir := cfg.Phonetics.CacheDir
	if cacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(dir, "prosody")
		}
	}
	return phonetics.Options{
		Source:                cfg.Phonetics.Source,
		URL:                   cfg.Phonetics.URL,
		Timeout:               cfg.Phonetics.Timeout,
		ImproveVowelSyllables: cfg.Phonetics.ImproveVowelSyllables,
		Model:                 cfg.Phonetics.Model,
		APIKey:                cfg.Phonetics.APIKey,
		CacheDir:              cacheDir,
		NoCache:               cfg.Phonetics.NoCache,
	}
}

// Catalog returns the forms catalog in use
func (a *Analyzer) Catalog() *forms.Catalog {
	return a.catalog
}

// Load resolves the analysis input. Explicit text wins; otherwise arg is
// read as a file, or taken as the poem itself when no such file exists;
// with neither, the sample poem is used.
func Load(arg, text string) (*parser.ParsedFile, error) {
	if text != "" {
		return parser.ParseContent("text", []byte(text))
	}
	if arg == "" {
		return parser.Sample(), nil
	}

	if _, err := os.Stat(arg); err == nil {
		return parser.Parse(arg)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return parser.ParseContent("text", []byte(arg))
}

// LooksLikePath reports whether a non-file argument was probably meant as a
// path rather than as poem text
func LooksLikePath(arg string) bool {
	return !strings.ContainsAny(arg, " \t\n") && len(filepath.Ext(arg)) > 1
}

// Annotate turns parsed input into an annotated poem, asking the phonetic
// source when the input is raw text
func (a *Analyzer) Annotate(ctx context.Context, in *parser.ParsedFile) (*poem.Poem, error) {
	var p *poem.Poem
	var err error

	if in.Annotated() {
		p, err = in.Document.Poem()
		if err != nil {
			return nil, err
		}
	} else {
		if a.source == nil {
			return nil, ErrNoSource
		}
		text := in.Text()
		if strings.TrimSpace(text) == "" {
			return nil, phonetics.ErrEmptyText
		}
		p, err = a.source.Annotate(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("annotate with %s: %w", a.sourceName, err)
		}
	}

	if p.Title == "" {
		p.Title = in.Title
	}
	if p.Author == "" {
		p.Author = in.Author
	}
	return p, nil
}

// Analyze runs the whole pipeline for one input. progress may be nil.
func (a *Analyzer) Analyze(ctx context.Context, in *parser.ParsedFile, progress ui.Progress) (*reporter.Report, error) {
	if progress == nil {
		progress = ui.Quiet{}
	}

	progress.SetStage(ui.StageAnnotate)
	if !in.Annotated() {
		progress.SetOperation(a.sourceName)
	}
	p, err := a.Annotate(ctx, in)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("annotated poem", "source", in.Path, "lines", p.LineCount(), "pairs", len(p.Pairs))

	progress.SetStage(ui.StageClassify)
	analysis, err := a.classifier.Classify(ctx, p)
	if err != nil {
		return nil, err
	}

	form := a.catalog.Match(analysis.Rhyme, analysis.Meter)

	progress.SetStage(ui.StageRunRules)
	ruleList := a.registry.Rules(p.LineCount())
	progress.SetRuleCount(len(ruleList))

	rctx := &rules.AnalysisContext{
		Poem:     p,
		Analysis: analysis,
		Catalog:  a.catalog,
		Form:     form,
	}
	var issues []rules.Issue
	for _, rule := range ruleList {
		progress.RuleStart(rule.Name())
		found, err := rule.Run(rctx)
		progress.RuleDone()
		if err != nil {
			a.logger.Warn("rule failed", "rule", rule.Name(), "error", err)
			continue
		}
		issues = append(issues, found...)
	}

	progress.SetStage(ui.StageDone)
	return reporter.NewReport(in.Path, p, analysis, form, issues), nil
}
