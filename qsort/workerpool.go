package qsort

import (
	"cmp"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// PieceResult describes one finished piece.
type PieceResult struct {
	Worker     int
	Piece      Piece
	Elapsed    time.Duration
	Partitions int
	Fallbacks  int
}

// workerPool runs the hybrid sort over pieces with a fixed number of
// goroutines. Pieces are handed out in the order given, one at a time, to
// whichever worker is free.
type workerPool[T cmp.Ordered] struct {
	workers  int
	cfg      Config
	observer Observer
}

type job struct {
	slot  int
	piece Piece
}

func newWorkerPool[T cmp.Ordered](cfg Config, observer Observer) *workerPool[T] {
	return &workerPool[T]{workers: cfg.MaxWorkers, cfg: cfg, observer: observer}
}

// run blocks until every piece has been sorted or a worker failed.
// Results are indexed like pieces.
func (wp *workerPool[T]) run(buf []T, pieces []Piece) ([]PieceResult, error) {
	if err := checkPieces(pieces, len(buf)); err != nil {
		return nil, err
	}
	results := make([]PieceResult, len(pieces))
	queue := make(chan job)
	g, ctx := errgroup.WithContext(context.Background())

	for w := range min(wp.workers, len(pieces)) {
		g.Go(func() error {
			for j := range queue {
				// stop taking new pieces once another worker failed
				if ctx.Err() != nil {
					return nil
				}
				if wp.observer != nil {
					wp.observer.PieceStarted(w, j.piece)
				}
				res, err := wp.sortPiece(w, buf, j.piece)
				if err != nil {
					return errors.Wrapf(err, "worker %d on piece [%d,%d]", w, j.piece.Lower, j.piece.Upper)
				}
				results[j.slot] = res
				if wp.observer != nil {
					wp.observer.PieceDone(res)
				}
				if glog.V(2) {
					glog.Infof("worker %d sorted [%d,%d] (%d elements) in %v", w, j.piece.Lower, j.piece.Upper, j.piece.Size, res.Elapsed)
				}
			}
			return nil
		})
	}

feed:
	for i, p := range pieces {
		select {
		case queue <- job{slot: i, piece: p}:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// sortPiece sorts the piece's own sub-slice; the capacity is clipped so the
// worker cannot reach past its upper bound.
func (wp *workerPool[T]) sortPiece(worker int, buf []T, p Piece) (res PieceResult, err error) {
	defer func() {
		if e := recoverFault(recover()); e != nil {
			err = e
		}
	}()
	part := buf[p.Lower : p.Upper+1 : p.Upper+1]
	h := newHybrid[T](wp.cfg)
	start := time.Now()
	h.sort(part, 0, len(part)-1)
	return PieceResult{
		Worker:     worker,
		Piece:      p,
		Elapsed:    time.Since(start),
		Partitions: h.partitions,
		Fallbacks:  h.fallbacks,
	}, nil
}
