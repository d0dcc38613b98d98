package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/prosody/internal/phonetics"
	"github.com/pthm/prosody/internal/pipeline"
	"github.com/pthm/prosody/internal/reporter"
	"github.com/pthm/prosody/internal/ui"
)

var (
	text                   string
	source                 string
	grouping               string
	noCache                bool
	improveSyllabification bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path | text]",
	Short: "Analyze the meter and rhyme scheme of a poem",
	Long: `Analyze a poem's meter line by line and its rhyme scheme as a whole.

With no argument the opening of Shakespeare's Sonnet 1 is analyzed.
Files ending in .json, .yaml or .yml are read as annotated documents and
need no phonetic source.

Examples:
  prosody analyze
  prosody analyze poem.txt
  prosody analyze --source llm poem.md
  prosody analyze --text "The cat sat on the mat
The dog lay on the log"
  prosody analyze --format json annotated.json > report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&text, "text", "t", "", "Poem text to analyze instead of a file")
	analyzeCmd.Flags().StringVar(&source, "source", "", "Phonetic source (prosodic, llm)")
	analyzeCmd.Flags().StringVar(&grouping, "grouping", "", "Rhyme grouping (union, keyed)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not read or write cached annotations")
	analyzeCmd.Flags().BoolVar(&improveSyllabification, "improve-syllabification", false, "Ask prosodic to split vowel clusters into more syllables")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	if source != "" {
		cfg.Phonetics.Source = source
	}
	if grouping != "" {
		cfg.Rhyme.Grouping = grouping
	}
	if noCache {
		cfg.Phonetics.NoCache = true
	}
	if improveSyllabification {
		cfg.Phonetics.ImproveVowelSyllables = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	u := GetUI()

	// Start progress tracking if in interactive mode
	pc := u.StartProgress()
	defer func() {
		if pc != nil {
			pc.Done(nil)
		}
	}()
	pc.SetStage(ui.StageLoadPoem)

	in, err := pipeline.Load(arg, text)
	if err != nil {
		return err
	}
	if text == "" && !in.Annotated() && in.Path == "text" && pipeline.LooksLikePath(arg) {
		u.Warn("file not found: %s (analyzing the argument as poem text)", arg)
	}
	logger.Debug("loaded poem", "source", in.Path, "type", in.FileType, "annotated", in.Annotated())

	// Annotated documents never touch the phonetic source
	var src phonetics.Source
	if !in.Annotated() {
		src, err = phonetics.New(pipeline.SourceOptions(cfg), logger)
		if err != nil {
			return err
		}
	}

	analyzer, err := pipeline.New(cfg, src, logger)
	if err != nil {
		return err
	}

	rep, err := analyzer.Analyze(cmd.Context(), in, u.Progress(pc))

	// Stop progress before reporting
	if pc != nil {
		pc.Done(err)
		pc = nil // Prevent double-done in defer
	}
	if err != nil {
		return fmt.Errorf("analyze %s: %w", in.Path, err)
	}

	var r reporter.Reporter
	if u.IsJSON() {
		r = reporter.NewJSONReporter(os.Stdout)
	} else {
		r = reporter.NewTerminalReporter(os.Stdout, u)
	}
	return r.Report(rep)
}
