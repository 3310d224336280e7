// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/provider"
)

// errNoSeeds marks a strategy that had nothing to look up.
var errNoSeeds = errors.New("no seeds")

// accumulator is an ordered id set with a target size.
type accumulator struct {
	ids      []string
	set      map[string]struct{}
	excluded func(id string) bool
	target   int
}

func newAccumulator(target int, excluded func(string) bool) *accumulator {
	return &accumulator{set: make(map[string]struct{}, target), excluded: excluded, target: target}
}

// add appends id unless it is excluded, already present, or the set is full.
func (a *accumulator) add(id string) bool {
	if a.full() || id == "" {
		return false
	}
	if _, dup := a.set[id]; dup {
		return false
	}
	if a.excluded != nil && a.excluded(id) {
		return false
	}
	a.set[id] = struct{}{}
	a.ids = append(a.ids, id)
	return true
}

func (a *accumulator) has(id string) bool {
	_, ok := a.set[id]
	return ok
}

func (a *accumulator) Len() int { return len(a.ids) }

func (a *accumulator) full() bool { return len(a.ids) >= a.target }

// run is the state shared by the strategies of one request.
type run struct {
	pipeline string
	provider Provider
	mapper   *idmap.Mapper
	acc      *accumulator
	logger   zerolog.Logger
}

// merge translates provider results to catalog ids and adds them in order.
// Ids with no catalog counterpart are dropped.
func (r *run) merge(ctx context.Context, media string, res *provider.PagedResults) int {
	if res == nil {
		return 0
	}
	added := 0
	for i := range res.Results {
		if r.acc.full() {
			break
		}
		id, ok := r.mapper.Internal(ctx, media, res.Results[i].ID)
		if !ok {
			continue
		}
		if r.acc.add(id) {
			added++
		}
	}
	return added
}

// strategy is one named step of a pipeline.
type strategy struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

// runStrategies executes strategies in order until the accumulator is full.
// A failing strategy is logged and skipped.
func runStrategies(ctx context.Context, r *run, strategies []strategy) {
	for _, s := range strategies {
		if r.acc.full() {
			metrics.RecordStrategy(r.pipeline, s.name, metrics.OutcomeSkipped)
			continue
		}

		before := r.acc.Len()
		err := s.fn(ctx, r)
		switch {
		case errors.Is(err, errNoSeeds):
			metrics.RecordStrategy(r.pipeline, s.name, metrics.OutcomeSkipped)
		case err != nil:
			metrics.RecordStrategy(r.pipeline, s.name, metrics.OutcomeFailed)
			r.logger.Warn().Err(err).Str("strategy", s.name).Int("added", r.acc.Len()-before).
				Msg("Recommendation strategy failed, continuing")
		default:
			metrics.RecordStrategy(r.pipeline, s.name, metrics.OutcomeOK)
			r.logger.Debug().Str("strategy", s.name).Int("added", r.acc.Len()-before).
				Int("total", r.acc.Len()).Msg("Recommendation strategy complete")
		}
	}
}

// lookupEach calls fetch for up to limit seeds, stopping early when the
// accumulator fills. Per-seed failures are joined; the remaining seeds still
// run.
func lookupEach(ctx context.Context, r *run, seeds []seed, limit int,
	fetch func(ctx context.Context, media string, id int64) (*provider.PagedResults, error),
) error {
	if len(seeds) == 0 || limit == 0 {
		return errNoSeeds
	}
	var errs []error
	for i, s := range seeds {
		if i >= limit || r.acc.full() {
			break
		}
		res, err := fetch(ctx, s.media, s.externalID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.merge(ctx, s.media, res)
	}
	return errors.Join(errs...)
}

// seed is a catalog item with a resolved provider id.
type seed struct {
	media      string
	externalID int64
}
