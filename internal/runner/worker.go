package runner

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hailam/movestats/internal/actions"
	"github.com/hailam/movestats/internal/corpus"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/rules"
)

// Worker folds fragments into its own tensor.
// Each worker has its own rules provider; nothing is shared.
type Worker struct {
	id int

	codec         *record.Codec
	provider      rules.Provider
	skipMalformed bool
	progressEvery int

	tensor  *actions.Tensor
	summary Summary
}

// NewWorker creates a worker with an empty tensor.
func NewWorker(id int, opts Options) *Worker {
	return &Worker{
		id:            id,
		codec:         opts.codec(),
		provider:      opts.newProvider(),
		skipMalformed: opts.SkipMalformed,
		progressEvery: opts.ProgressEvery,
		tensor:        actions.NewTensor(),
	}
}

// ID returns the worker's ID.
func (w *Worker) ID() int {
	return w.id
}

// Tensor returns the worker's private counts.
func (w *Worker) Tensor() *actions.Tensor {
	return w.tensor
}

// Summary returns the worker's totals.
func (w *Worker) Summary() Summary {
	return w.summary
}

// Process decodes and replays one fragment.
func (w *Worker) Process(f corpus.Fragment) error {
	rec, err := w.codec.Decode(f.Name, f.Data)
	if err == nil {
		var stats actions.ReplayStats
		stats, err = actions.Replay(w.provider, rec, w.tensor)
		if err == nil {
			w.summary.addRecord(rec, stats)
		}
	}

	if err != nil {
		if w.skipMalformed && errors.Is(err, record.ErrMalformed) {
			log.Warn().Err(err).Str("fragment", f.Name).Msg("skipping malformed fragment")
			w.summary.Skipped++
			return nil
		}
		return err
	}

	if w.progressEvery > 0 && w.summary.Records%w.progressEvery == 0 {
		log.Debug().Int("worker", w.id).Int("records", w.summary.Records).
			Int("classified", w.summary.Classified).Msg("progress")
	}
	return nil
}
