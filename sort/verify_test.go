package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumIgnoresOrder(t *testing.T) {
	assert.Equal(t, checksum([]int{3, 1, 2, 2}), checksum([]int{2, 1, 2, 3}))
	assert.NotEqual(t, checksum([]int{1, 2, 2}), checksum([]int{1, 1, 2}))
}

func TestVerifyPermutation(t *testing.T) {
	assert.NoError(t, verifyPermutation([]int{0, 1, 2, 3}))
	assert.ErrorIs(t, verifyPermutation([]int{0, 2, 1, 3}), errFailure)
}

func TestVerifySorted(t *testing.T) {
	in := []int{5, 1, 5, 3}
	want := checksum(in)
	assert.NoError(t, verifySorted([]int{1, 3, 5, 5}, want))
	assert.ErrorIs(t, verifySorted([]int{1, 5, 3, 5}, want), errFailure)
	assert.ErrorIs(t, verifySorted([]int{1, 3, 3, 5}, want), errFailure, "lost a value")
}
