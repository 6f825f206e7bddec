// Package batch compares every pair in a set of setups.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wonderfulspam/setup-smith/pkg/differ"
	"github.com/wonderfulspam/setup-smith/pkg/logging"
	"github.com/wonderfulspam/setup-smith/pkg/parser"
)

var ErrTooFewSetups = errors.New("need at least two setups to compare")

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

type Options struct {
	Workers int
	Compare []differ.Option
	Logger  *slog.Logger
}

// Pair is the comparison of two setups. Err is set instead of Result when
// that one comparison failed.
type Pair struct {
	Left   *parser.Setup  `json:"-" yaml:"-"`
	Right  *parser.Setup  `json:"-" yaml:"-"`
	Result *differ.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error          `json:"-" yaml:"-"`
}

// Changes is the number of differing leaves, or -1 when the comparison
// failed.
func (p Pair) Changes() int {
	if p.Result == nil {
		return -1
	}
	return len(p.Result.Leaves)
}

// Run compares setups[i] with setups[j] for every i < j, at most
// opts.Workers at a time. Pairs come back in that (i, j) order. A failed
// comparison is recorded on its Pair and does not stop the others; only a
// cancelled context makes Run itself fail.
func Run(ctx context.Context, setups []*parser.Setup, opts Options) ([]Pair, error) {
	if len(setups) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSetups, len(setups))
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	pairs := make([]Pair, 0, len(setups)*(len(setups)-1)/2)
	for i := range setups {
		for j := i + 1; j < len(setups); j++ {
			pairs = append(pairs, Pair{Left: setups[i], Right: setups[j]})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range pairs {
		p := &pairs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Result, p.Err = differ.Compare(p.Left, p.Right, opts.Compare...)
			if p.Err != nil {
				logger.Warn("comparison failed", "left", p.Left.ID, "right", p.Right.ID, "error", p.Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("batch finished", "setups", len(setups), "pairs", len(pairs), "workers", workers)
	return pairs, nil
}

// Closest returns the successful pair with the fewest differences, and false
// when every comparison failed.
func Closest(pairs []Pair) (Pair, bool) {
	best, found := Pair{}, false
	for _, p := range pairs {
		if p.Result == nil {
			continue
		}
		if !found || p.Changes() < best.Changes() {
			best, found = p, true
		}
	}
	return best, found
}
