// Package search recovers the truncated tail of a message by trying every
// candidate suffix against the checksum of the full message.
package search

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/candidate"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/workerpool"
)

var (
	ErrNotFound      = errors.New("no candidate matches the checksum")
	ErrAmbiguous     = errors.New("more than one candidate matches the checksum")
	ErrInvalidLength = errors.New("missing length must not be negative")
)

type options struct {
	workers   int
	alphabet  []byte
	ambiguity bool
}

// Option configures a search.
type Option func(*options)

// WithWorkers bounds the number of concurrent evaluators.
// Zero or less means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithAlphabet replaces candidate.Alphabet.
func WithAlphabet(alphabet []byte) Option {
	return func(o *options) {
		o.alphabet = alphabet
	}
}

// WithAmbiguityCheck evaluates every candidate instead of stopping at the
// first match, and reports ErrAmbiguous if more than one matched.
func WithAmbiguityCheck() Option {
	return func(o *options) {
		o.ambiguity = true
	}
}

// result holds the first match. Later matches are kept only when
// collecting.
type result struct {
	m       sync.Mutex
	first   []byte
	all     [][]byte
	collect bool
}

// record returns true for the first match.
func (r *result) record(message []byte) bool {
	r.m.Lock()
	defer r.m.Unlock()

	if r.collect {
		r.all = append(r.all, message)
	}
	if r.first != nil {
		return false
	}
	r.first = message
	return true
}

// Reconstitute searches for a suffix of missingLength symbols that makes
// prefix ++ suffix hash to checksum. When several suffixes match, the
// one recorded first wins; which one that is depends on scheduling.
// Returns ErrNotFound if no candidate matches, or the context error if
// ctx is done before the search completes.
func Reconstitute(ctx context.Context, prefix []byte, checksum string,
	p crc.Params, missingLength int, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	res, err := run(ctx, prefix, checksum, p, missingLength, o, o.ambiguity)
	if err != nil {
		return nil, err
	}

	if res.first == nil {
		return nil, ErrNotFound
	}
	if o.ambiguity && len(res.all) > 1 {
		return res.first, ErrAmbiguous
	}
	return res.first, nil
}

// ReconstituteAll returns every matching message in byte order.
func ReconstituteAll(ctx context.Context, prefix []byte, checksum string,
	p crc.Params, missingLength int, opts ...Option) ([][]byte, error) {
	res, err := run(ctx, prefix, checksum, p, missingLength, newOptions(opts), true)
	if err != nil {
		return nil, err
	}

	if len(res.all) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(res.all, func(i, j int) bool {
		return bytes.Compare(res.all[i], res.all[j]) < 0
	})
	return res.all, nil
}

func newOptions(opts []Option) *options {
	o := &options{
		alphabet: candidate.Alphabet,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func run(ctx context.Context, prefix []byte, checksum string,
	p crc.Params, missingLength int, o *options, collect bool) (*result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if missingLength < 0 {
		return nil, ErrInvalidLength
	}

	res := &result{collect: collect}
	if len(checksum) != crc.DigitCount(p) {
		// Format never produces this, so nothing can match.
		return res, nil
	}

	searchCtx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	pool := workerpool.New(searchCtx, o.workers)
	candidates := candidate.Stream(pool.Context(), missingLength, o.alphabet)
	e := newEvaluator(prefix, checksum, p)

	for i := 0; i < pool.Size(); i++ {
		err := pool.Go(func(ctx context.Context) error {
			for c := range candidates {
				message, ok := e.evaluate(c)
				if ok == false {
					continue
				}
				if res.record(message) && collect == false {
					cancelFunc()
				}
			}
			return nil
		})
		if err != nil {
			break
		}
	}

	err := pool.Wait()
	if err != nil {
		return nil, err
	}

	if res.first == nil || collect {
		// The stream may have been cut short by the caller.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return res, nil
}
