// Package runner folds a fragment corpus into an action tensor, either
// sequentially or with a pool of workers that each own a private tensor.
package runner

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/movestats/internal/actions"
	"github.com/hailam/movestats/internal/corpus"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/rules"
)

// Options configures a run.
type Options struct {
	// Workers above 1 enables the parallel fold.
	Workers int
	// SkipMalformed logs and skips undecodable fragments instead of
	// aborting. Illegal moves always abort.
	SkipMalformed bool
	// Codec decodes fragments; nil uses the default flag names.
	Codec *record.Codec
	// NewProvider builds a rules provider per worker; nil uses rules.NewGame.
	NewProvider func() rules.Provider
	// ProgressEvery logs progress at debug level every N records.
	ProgressEvery int
}

func (o Options) codec() *record.Codec {
	if o.Codec != nil {
		return o.Codec
	}
	return record.NewCodec("", "")
}

func (o Options) newProvider() rules.Provider {
	if o.NewProvider != nil {
		return o.NewProvider()
	}
	return rules.NewGame()
}

// Result is the outcome of a run.
type Result struct {
	Tensor  *actions.Tensor
	Summary Summary
}

// Table normalizes the run's tensor.
func (r *Result) Table() *actions.Table {
	return actions.Normalize(r.Tensor)
}

// Run folds every fragment of src.
func Run(ctx context.Context, src corpus.Source, opts Options) (*Result, error) {
	if opts.Workers > 1 {
		return runParallel(ctx, src, opts)
	}

	w := NewWorker(0, opts)
	if err := src.Each(ctx, w.Process); err != nil {
		return nil, err
	}

	log.Debug().Int("records", w.summary.Records).Msg("sequential run finished")
	return &Result{Tensor: w.Tensor(), Summary: w.Summary()}, nil
}

func runParallel(ctx context.Context, src corpus.Source, opts Options) (*Result, error) {
	g, ctx := errgroup.WithContext(ctx)

	fragments := make(chan corpus.Fragment, 128)

	g.Go(func() error {
		defer close(fragments)
		return src.Each(ctx, func(f corpus.Fragment) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case fragments <- f:
				return nil
			}
		})
	})

	workers := make([]*Worker, opts.Workers)
	for i := range workers {
		w := NewWorker(i, opts)
		workers[i] = w
		g.Go(func() error {
			for f := range fragments {
				if err := w.Process(f); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Every worker is done; merge their private tensors.
	result := &Result{Tensor: actions.NewTensor()}
	for _, w := range workers {
		result.Tensor.Add(w.Tensor())
		result.Summary.Add(w.Summary())
	}

	log.Debug().Int("workers", len(workers)).Int("records", result.Summary.Records).
		Msg("parallel run finished")
	return result, nil
}
