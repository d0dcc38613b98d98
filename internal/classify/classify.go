// Package classify runs the meter and rhyme classifications over an
// annotated poem.
package classify

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pthm/prosody/internal/meter"
	"github.com/pthm/prosody/internal/poem"
	"github.com/pthm/prosody/internal/rhyme"
)

// Options configures a Classifier
type Options struct {
	Markers  meter.Markers
	Resolver rhyme.Resolver
}

// Analysis is the combined classification of a poem
type Analysis struct {
	Meter []meter.Result
	Rhyme rhyme.Assignment
}

// Classifier classifies poems. It holds no per-poem state and is safe for
// concurrent use.
type Classifier struct {
	describer *meter.Describer
	resolver  rhyme.Resolver
	logger    *slog.Logger
}

// New creates a Classifier. A nil logger uses slog.Default().
func New(opts Options, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		describer: meter.NewDescriber(opts.Markers),
		resolver:  opts.Resolver,
		logger:    logger,
	}
}

// Classify computes the per-line meter results and the rhyme scheme. The
// two read the same poem and write disjoint results, so they run
// concurrently. The only error is cancellation of ctx.
func (c *Classifier) Classify(ctx context.Context, p *poem.Poem) (*Analysis, error) {
	lines := p.Lines()
	analysis := &Analysis{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		analysis.Meter = c.describer.DescribeAll(lines)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var pairs []poem.RhymePair
		if p != nil {
			pairs = p.Pairs
		}
		analysis.Rhyme = rhyme.Assign(c.resolver.Resolve(pairs), lines)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("classified poem",
		slog.Int("lines", len(lines)),
		slog.String("grouping", c.resolver.Grouping.String()),
		slog.String("scheme", analysis.Rhyme.Notation()),
		slog.Int("groups", len(analysis.Rhyme.Groups)),
	)

	return analysis, nil
}
