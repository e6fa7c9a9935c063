package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/kvdb"
	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/qsort"
)

func main() {
	err := newRootCmd().Execute()
	glog.Flush()
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, errInvalidInput):
		fmt.Fprintln(os.Stderr, "Invalid Input")
	case errors.Is(err, errFailure):
		fmt.Fprintln(os.Stderr, "Failure")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	glog.Errorf("%+v", err)
	glog.Flush()
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	o := defaultOptions()
	cmd := &cobra.Command{
		Use:   "sort -n SIZE [flags]",
		Short: "Shuffle and sort SIZE integers with a multithreaded hybrid quicksort",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// glog complains unless the standard flag set has been parsed
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(o)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, errInvalidInput)
	})

	f := cmd.Flags()
	f.IntVarP(&o.size, "size", "n", 0, "number of elements to sort (required)")
	f.IntVarP(&o.threshold, "threshold", "s", o.threshold, "largest range handed to the alternate sort")
	f.StringVarP(&o.alternate, "alternate", "a", o.alternate, "alternate sort: s (shell) or i (insertion)")
	f.Int64VarP(&o.seed, "seed", "r", o.seed, "shuffle seed, -1 seeds from the clock")
	f.StringVarP(&o.multithread, "multithread", "m", o.multithread, "sort pieces in parallel: y or n")
	f.IntVarP(&o.pieces, "pieces", "p", o.pieces, "pieces to partition before parallel sorting")
	f.IntVarP(&o.threads, "threads", "t", o.threads, "maximum concurrent sorting goroutines")
	f.StringVar(&o.median, "median3", o.median, "median-of-three pivot conditioning: y or n")
	f.StringVar(&o.input, "input", o.input, "permutation (0..n-1) or random (values with duplicates)")
	f.IntVar(&o.runs, "runs", o.runs, "number of timed runs")
	f.StringVar(&o.reportDir, "report-dir", "", "write markdown, JSON and metrics reports into this directory")

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.store, "store", o.store, "persist results: none, bbolt, badger or pebble")
	pf.StringVar(&o.storePath, "store-path", "", "store file or directory (default depends on --store)")
	pf.AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newHistoryCmd(&o))
	return cmd
}

// openStore is replaced in tests.
var openStore = kvdb.Open

func run(o options) (err error) {
	totalStart := time.Now()
	cfg, err := o.config()
	if err != nil {
		return err
	}

	metrics := newSortMetrics()
	sorter, err := qsort.New[int](cfg, qsort.WithObserver(metrics))
	if err != nil {
		return errors.Mark(err, errInvalidInput)
	}

	var store kvdb.Store
	if kind, _ := kvdb.ParseKind(o.store); kind != kvdb.None {
		if store, err = openStore(kind, o.storePath); err != nil {
			return err
		}
		// badger and pebble flush on Close
		defer func() {
			err = errors.CombineErrors(err, store.Close())
		}()
	}

	glog.Infof("sorting %d elements: threshold=%d alternate=%s median=%t multithread=%t pieces=%d threads=%d GOMAXPROCS=%d",
		o.size, cfg.Threshold, cfg.Alternate, cfg.MedianOfThree, cfg.Multithread, cfg.Pieces, cfg.MaxWorkers, runtime.GOMAXPROCS(0))

	var results []BenchmarkResult
	for i := 1; i <= o.runs; i++ {
		arr := generateData(o.size, o.input, o.seed)
		result, err := runBenchmark(sorter, arr, o, i, metrics)
		fmt.Printf("Total Run Time (sec): %.3f\n", time.Since(totalStart).Seconds())
		if err != nil {
			return err
		}
		results = append(results, result)

		if store != nil {
			if err := storeResult(store, result); err != nil {
				return err
			}
		}
	}

	if o.reportDir != "" {
		if err := saveReports(o.reportDir, results, metrics); err != nil {
			return err
		}
		glog.Infof("reports written to %s", o.reportDir)
	}
	return nil
}

func storeResult(store kvdb.Store, result BenchmarkResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	rec := kvdb.Record{Timestamp: time.Now(), Run: result.TestRun, Data: data}
	return errors.Wrapf(store.Put(rec), "store run %d", result.TestRun)
}
