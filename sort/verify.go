package main

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// checksum is an order independent fingerprint of the multiset of values.
func checksum(arr []int) uint64 {
	var sum uint64
	var b [8]byte
	for _, v := range arr {
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		sum += xxhash.Sum64(b[:])
	}
	return sum
}

// verifyPermutation checks arr[i] == i, which holds after sorting a
// shuffled identity permutation.
func verifyPermutation(arr []int) error {
	for i, v := range arr {
		if v != i {
			return errors.Wrapf(errFailure, "arr[%d] = %d", i, v)
		}
	}
	return nil
}

// verifySorted checks ascending order and that the values are the ones
// summarised by want.
func verifySorted(arr []int, want uint64) error {
	for i := 1; i < len(arr); i++ {
		if arr[i-1] > arr[i] {
			return errors.Wrapf(errFailure, "arr[%d] = %d > arr[%d] = %d", i-1, arr[i-1], i, arr[i])
		}
	}
	if got := checksum(arr); got != want {
		return errors.Wrapf(errFailure, "checksum %x, want %x", got, want)
	}
	return nil
}
