package qsort

import (
	"cmp"
	"slices"
)

// Range is an inclusive index interval; Upper < Lower means empty.
type Range struct {
	Lower, Upper int
}

func (r Range) Len() int {
	return r.Upper - r.Lower + 1
}

// Piece is one of the disjoint ranges produced by Schedule.
type Piece struct {
	Range
	Size int
}

func newPiece(lower, upper int) Piece {
	return Piece{Range: Range{Lower: lower, Upper: upper}, Size: upper - lower + 1}
}

// Schedule partitions buf into exactly count disjoint pieces by repeatedly
// splitting the largest piece around its pivot, and returns them largest
// first. Each split leaves its pivot in its final position, outside both
// halves, so the pieces plus the count-1 pivots cover buf.
func Schedule[T cmp.Ordered](buf []T, count int, median bool) (pieces []Piece, err error) {
	if count < 1 || count > len(buf) {
		return nil, invalidConfig("piece count %d outside [1,%d]", count, len(buf))
	}
	defer func() {
		if e := recoverFault(recover()); e != nil {
			pieces, err = nil, e
		}
	}()
	pieces, _ = schedule(buf, count, median)
	return pieces, nil
}

// schedule does the work of Schedule and also returns the number of
// partitions it ran.
func schedule[T cmp.Ordered](buf []T, count int, median bool) ([]Piece, int) {
	pieces := make([]Piece, 1, count)
	pieces[0] = newPiece(0, len(buf)-1)
	partitions := 0

	for len(pieces) < count {
		biggest := 0
		for i := range pieces {
			if pieces[i].Size > pieces[biggest].Size {
				biggest = i
			}
		}
		lo, hi := pieces[biggest].Lower, pieces[biggest].Upper
		p := lo
		if lo < hi {
			p = partition(buf, lo, hi, median)
			partitions++
		}
		// the left half keeps the slot, the right half is appended
		pieces[biggest] = newPiece(lo, p-1)
		pieces = append(pieces, newPiece(p+1, hi))
	}

	slices.SortStableFunc(pieces, func(a, b Piece) int {
		return cmp.Compare(b.Size, a.Size)
	})
	return pieces, partitions
}

// checkPieces verifies that every piece lies inside [0,n) and that no two
// pieces overlap.
func checkPieces(pieces []Piece, n int) error {
	byLower := make([]Piece, 0, len(pieces))
	for _, p := range pieces {
		if p.Size != p.Len() || p.Size < 0 {
			return invariantViolation("piece [%d,%d] has size %d", p.Lower, p.Upper, p.Size)
		}
		if p.Lower < 0 || p.Upper >= n || p.Lower > n {
			return invariantViolation("piece [%d,%d] outside buffer of %d", p.Lower, p.Upper, n)
		}
		if p.Size > 0 {
			byLower = append(byLower, p)
		}
	}
	slices.SortFunc(byLower, func(a, b Piece) int { return cmp.Compare(a.Lower, b.Lower) })
	for i := 1; i < len(byLower); i++ {
		if byLower[i].Lower <= byLower[i-1].Upper {
			return invariantViolation("pieces [%d,%d] and [%d,%d] overlap",
				byLower[i-1].Lower, byLower[i-1].Upper, byLower[i].Lower, byLower[i].Upper)
		}
	}
	return nil
}
