package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"pgregory.net/rand"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/qsort"
)

// maxRandomValue bounds the values of --input random.
const maxRandomValue = 1000000

// BenchmarkResult is one timed sort.
type BenchmarkResult struct {
	Algorithm     string        `json:"algorithm"`
	DataSize      int           `json:"data_size"`
	Input         string        `json:"input"`
	TestRun       int           `json:"test_run"`
	Seed          int64         `json:"seed"`
	Threshold     int           `json:"threshold"`
	Alternate     string        `json:"alternate"`
	MedianOfThree bool          `json:"median_of_three"`
	Pieces        int           `json:"pieces"`
	Threads       int           `json:"threads"`
	Duration      time.Duration `json:"duration"`
	CPUTime       time.Duration `json:"cpu_time"`
	MemoryUsage   uint64        `json:"memory_usage_bytes"`
	GoroutineNum  int           `json:"goroutine_num"`
	Partitions    int           `json:"partitions"`
	Fallbacks     int           `json:"fallbacks"`
	LargestPiece  int           `json:"largest_piece"`
}

// SystemStats captures wall clock, CPU and allocation counters around a sort.
type SystemStats struct {
	startTime time.Time
	startCPU  time.Duration
	startMem  runtime.MemStats
}

func startStats() *SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemStats{
		startTime: time.Now(),
		startCPU:  processCPUTime(),
		startMem:  m,
	}
}

// endStats returns wall time, CPU time and bytes allocated since startStats.
func (s *SystemStats) endStats() (time.Duration, time.Duration, uint64) {
	wall := time.Since(s.startTime)
	cpu := processCPUTime() - s.startCPU
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return wall, cpu, m.TotalAlloc - s.startMem.TotalAlloc
}

// timed runs fn and prints its CPU time the way the phases of a run are reported.
func timed(label string, fn func()) {
	cpu := processCPUTime()
	fn()
	fmt.Printf("%s in %.3f seconds\n", label, (processCPUTime() - cpu).Seconds())
}

// generateData creates, initialises and shuffles the buffer for one run.
func generateData(n int, input string, seed int64) []int {
	var arr []int
	timed("Array created", func() {
		arr = make([]int, n)
	})

	r := newRand(seed)
	timed("Array initialized", func() {
		if input == inputRandom {
			for i := range arr {
				arr[i] = r.Intn(maxRandomValue)
			}
			return
		}
		for i := range arr {
			arr[i] = i
		}
	})

	timed("Array randomized", func() {
		r.Shuffle(len(arr), func(i, j int) {
			arr[i], arr[j] = arr[j], arr[i]
		})
	})
	return arr
}

// newRand seeds from the clock when seed is -1.
func newRand(seed int64) *rand.Rand {
	if seed == -1 {
		return rand.New(uint64(time.Now().UnixNano()))
	}
	return rand.New(uint64(seed))
}

// runBenchmark sorts arr once and verifies the result.
func runBenchmark(s *qsort.Sorter[int], arr []int, o options, run int, metrics *sortMetrics) (BenchmarkResult, error) {
	cfg := s.Config()
	result := BenchmarkResult{
		Algorithm:     "hybrid_quicksort",
		DataSize:      len(arr),
		Input:         o.input,
		TestRun:       run,
		Seed:          o.seed,
		Threshold:     cfg.Threshold,
		Alternate:     cfg.Alternate.String(),
		MedianOfThree: cfg.MedianOfThree,
		GoroutineNum:  runtime.NumGoroutine(),
	}
	if cfg.Multithread {
		result.Algorithm = "parallel_hybrid_quicksort"
		result.Pieces = cfg.Pieces
		result.Threads = cfg.MaxWorkers
	}

	var want uint64
	if o.input == inputRandom {
		want = checksum(arr)
	}

	stats := startStats()
	rep, err := s.Sort(arr)
	wall, cpu, mem := stats.endStats()
	if err != nil {
		return result, errors.Wrapf(err, "run %d", run)
	}
	result.Duration = wall
	result.CPUTime = cpu
	result.MemoryUsage = mem
	result.Partitions = rep.Partitions
	result.Fallbacks = rep.Fallbacks
	if len(rep.Pieces) > 0 {
		result.LargestPiece = rep.Pieces[0].Size
	}
	metrics.observeRun(cfg.Multithread, wall.Seconds())

	fmt.Printf("Seconds spent sorting: Wall Clock:  %.3f / CPU: %.3f\n", wall.Seconds(), cpu.Seconds())
	glog.Infof("run %d: %s elements, %d partitions, %d fallback sorts, %s allocated",
		run, humanize.Comma(int64(len(arr))), rep.Partitions, rep.Fallbacks, humanize.Bytes(mem))

	if o.input == inputRandom {
		err = verifySorted(arr, want)
	} else {
		err = verifyPermutation(arr)
	}
	return result, err
}

// saveResultsToMarkdown writes benchmark_results.md into dir.
func saveResultsToMarkdown(dir string, results []BenchmarkResult) error {
	file, err := os.Create(filepath.Join(dir, "benchmark_results.md"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	var builder strings.Builder

	builder.WriteString("# Hybrid quicksort benchmark\n\n")
	builder.WriteString(fmt.Sprintf("Run at: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU cores: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0)))

	builder.WriteString("| algorithm | run | elements | input | threshold | alternate | median | pieces | threads | wall | cpu | allocated | partitions |\n")
	builder.WriteString("|-----------|-----|----------|-------|-----------|-----------|--------|--------|---------|------|-----|-----------|------------|\n")
	var total time.Duration
	for _, r := range results {
		builder.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %d | %s | %t | %d | %d | %v | %v | %s | %d |\n",
			r.Algorithm, r.TestRun, humanize.Comma(int64(r.DataSize)), r.Input, r.Threshold, r.Alternate,
			r.MedianOfThree, r.Pieces, r.Threads, r.Duration.Round(time.Microsecond),
			r.CPUTime.Round(time.Microsecond), humanize.Bytes(r.MemoryUsage), r.Partitions))
		total += r.Duration
	}
	if len(results) > 0 {
		builder.WriteString(fmt.Sprintf("\nAverage wall clock: %v\n", (total / time.Duration(len(results))).Round(time.Microsecond)))
	}

	if _, err := writer.WriteString(builder.String()); err != nil {
		return err
	}
	return writer.Flush()
}

// saveResultsToJSON writes benchmark_results.json into dir.
func saveResultsToJSON(dir string, results []BenchmarkResult) error {
	file, err := os.Create(filepath.Join(dir, "benchmark_results.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}
	return writer.Flush()
}

// saveMetrics writes metrics.prom into dir.
func saveMetrics(dir string, metrics *sortMetrics) error {
	file, err := os.Create(filepath.Join(dir, "metrics.prom"))
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if err := metrics.writeText(writer); err != nil {
		return err
	}
	return writer.Flush()
}

// saveReports writes every report file, creating dir if needed.
func saveReports(dir string, results []BenchmarkResult, metrics *sortMetrics) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create report dir %s", dir)
	}
	if err := saveResultsToMarkdown(dir, results); err != nil {
		return errors.Wrap(err, "write markdown report")
	}
	if err := saveResultsToJSON(dir, results); err != nil {
		return errors.Wrap(err, "write JSON report")
	}
	if err := saveMetrics(dir, metrics); err != nil {
		return errors.Wrap(err, "write metrics")
	}
	return nil
}
