package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/kvdb"
)

func newHistoryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the runs persisted with --store",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			kind, err := kvdb.ParseKind(o.store)
			if err != nil {
				return errors.Mark(err, errInvalidInput)
			}
			if kind == kvdb.None {
				return errors.Wrap(errInvalidInput, "history needs --store")
			}
			return showHistory(os.Stdout, kind, o.storePath)
		},
	}
}

func showHistory(w io.Writer, kind kvdb.Kind, path string) (err error) {
	store, err := openStore(kind, path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, store.Close())
	}()
	return printHistory(w, store)
}

// printHistory writes one line per stored run, oldest first.
func printHistory(w io.Writer, store kvdb.Store) error {
	count := 0
	err := store.Each(func(rec kvdb.Record) error {
		var r BenchmarkResult
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return errors.Wrapf(err, "decode run at %s", rec.Timestamp.Format(time.RFC3339))
		}
		count++
		_, err := fmt.Fprintf(w, "%s  run %-3d %-26s n=%-12s wall=%-10v cpu=%-10v pieces=%d threads=%d partitions=%d\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Run, r.Algorithm, humanize.Comma(int64(r.DataSize)),
			r.Duration.Round(time.Microsecond), r.CPUTime.Round(time.Microsecond), r.Pieces, r.Threads, r.Partitions)
		return err
	})
	if err != nil {
		return err
	}
	if count == 0 {
		_, err = fmt.Fprintln(w, "no stored runs")
	}
	return err
}
