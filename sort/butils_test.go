package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/qsort"
)

func TestGenerateData(t *testing.T) {
	perm := generateData(100, inputPermutation, 4)
	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v)
	}
	assert.Equal(t, perm, generateData(100, inputPermutation, 4), "same seed, same shuffle")

	random := generateData(100, inputRandom, 4)
	for _, v := range random {
		assert.True(t, v >= 0 && v < maxRandomValue)
	}
}

func TestRunBenchmarkAndReports(t *testing.T) {
	o := defaultOptions()
	o.size = 2000
	o.median = "y"
	metrics := newSortMetrics()

	var results []BenchmarkResult
	for _, input := range []string{inputPermutation, inputRandom} {
		o.input = input
		cfg, err := o.config()
		require.NoError(t, err)
		s, err := qsort.New[int](cfg, qsort.WithObserver(metrics))
		require.NoError(t, err)

		result, err := runBenchmark(s, generateData(o.size, o.input, o.seed), o, len(results)+1, metrics)
		require.NoError(t, err)
		assert.Equal(t, "parallel_hybrid_quicksort", result.Algorithm)
		assert.Equal(t, 10, result.Pieces)
		assert.Positive(t, result.LargestPiece)
		results = append(results, result)
	}

	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, saveReports(dir, results, metrics))

	md, err := os.ReadFile(filepath.Join(dir, "benchmark_results.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| parallel_hybrid_quicksort | 1 | 2,000 | permutation |")

	raw, err := os.ReadFile(filepath.Join(dir, "benchmark_results.json"))
	require.NoError(t, err)
	var decoded []BenchmarkResult
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, results, decoded)

	prom, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(prom), "qsort_pieces_total 20"), string(prom))
	assert.Contains(t, string(prom), `qsort_run_duration_seconds_count{mode="parallel"} 2`)
}
