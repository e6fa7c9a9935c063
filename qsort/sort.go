// Package qsort implements a hybrid quicksort that falls back to Shell or
// insertion sort below a size threshold and can split the buffer into a fixed
// number of disjoint pieces sorted by a bounded pool of goroutines.
package qsort

import (
	"cmp"
	"time"

	"github.com/golang/glog"
)

// Observer is notified about scheduling and about every piece a worker
// starts and finishes. PieceStarted and PieceDone are called from worker
// goroutines and must be safe for concurrent use. A piece that fails gets no
// PieceDone.
type Observer interface {
	Scheduled(pieces []Piece)
	PieceStarted(worker int, p Piece)
	PieceDone(res PieceResult)
}

// Report summarises one call to Sort.
type Report struct {
	Pieces  []Piece
	Results []PieceResult
	// Partitions counts scheduler and worker partitions together.
	Partitions int
	Fallbacks  int
	Elapsed    time.Duration
}

type options struct {
	observer Observer
}

type Option func(*options)

// WithObserver attaches an Observer to the sorter.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// Sorter sorts buffers of T with a fixed Config. It holds no per-sort state
// and may be reused, but not on the same buffer concurrently.
type Sorter[T cmp.Ordered] struct {
	cfg      Config
	observer Observer
}

// New validates cfg and returns a Sorter.
func New[T cmp.Ordered](cfg Config, opts ...Option) (*Sorter[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Sorter[T]{cfg: cfg, observer: o.observer}, nil
}

func (s *Sorter[T]) Config() Config {
	return s.cfg
}

// Sort orders buf ascending in place. The returned error is either
// ErrInvalidConfiguration or ErrInvariantViolation; after the latter the
// buffer is a permutation of its input but possibly unsorted.
func (s *Sorter[T]) Sort(buf []T) (Report, error) {
	if err := s.cfg.Validate(len(buf)); err != nil {
		return Report{}, err
	}
	start := time.Now()
	var (
		rep Report
		err error
	)
	switch {
	case len(buf) < 2:
	case !s.cfg.Multithread:
		rep, err = s.sortSequential(buf)
	default:
		rep, err = s.sortParallel(buf)
	}
	if err != nil {
		return Report{}, err
	}
	rep.Elapsed = time.Since(start)
	return rep, nil
}

func (s *Sorter[T]) sortSequential(buf []T) (rep Report, err error) {
	defer func() {
		if e := recoverFault(recover()); e != nil {
			err = e
		}
	}()
	whole := newPiece(0, len(buf)-1)
	if s.observer != nil {
		s.observer.Scheduled([]Piece{whole})
	}
	if s.observer != nil {
		s.observer.PieceStarted(0, whole)
	}
	h := newHybrid[T](s.cfg)
	began := time.Now()
	h.sort(buf, 0, len(buf)-1)
	res := PieceResult{Piece: whole, Elapsed: time.Since(began), Partitions: h.partitions, Fallbacks: h.fallbacks}
	if s.observer != nil {
		s.observer.PieceDone(res)
	}
	return Report{
		Pieces:     []Piece{whole},
		Results:    []PieceResult{res},
		Partitions: h.partitions,
		Fallbacks:  h.fallbacks,
	}, nil
}

func (s *Sorter[T]) sortParallel(buf []T) (Report, error) {
	var (
		pieces     []Piece
		partitions int
	)
	err := func() (err error) {
		defer func() {
			if e := recoverFault(recover()); e != nil {
				err = e
			}
		}()
		pieces, partitions = schedule(buf, s.cfg.Pieces, s.cfg.MedianOfThree)
		return nil
	}()
	if err != nil {
		return Report{}, err
	}
	if glog.V(1) {
		glog.Infof("scheduled %d pieces over %d elements, largest %d, smallest %d",
			len(pieces), len(buf), pieces[0].Size, pieces[len(pieces)-1].Size)
	}
	if s.observer != nil {
		s.observer.Scheduled(pieces)
	}

	results, err := newWorkerPool[T](s.cfg, s.observer).run(buf, pieces)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Pieces: pieces, Results: results, Partitions: partitions}
	for _, r := range results {
		rep.Partitions += r.Partitions
		rep.Fallbacks += r.Fallbacks
	}
	return rep, nil
}

// Sort orders buf ascending in place using cfg.
func Sort[T cmp.Ordered](buf []T, cfg Config) error {
	s, err := New[T](cfg)
	if err != nil {
		return err
	}
	_, err = s.Sort(buf)
	return err
}
