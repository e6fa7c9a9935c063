package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/kvdb"
)

// closeFailStore keeps records in memory and fails on Close like a store
// whose final flush did not reach disk.
type closeFailStore struct {
	recs   []kvdb.Record
	closed bool
}

var errFlush = errors.New("flush failed")

func (s *closeFailStore) Put(rec kvdb.Record) error {
	s.recs = append(s.recs, rec)
	return nil
}

func (s *closeFailStore) Each(fn func(kvdb.Record) error) error {
	for _, rec := range s.recs {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *closeFailStore) Close() error {
	s.closed = true
	return errFlush
}

func withStore(t *testing.T, store kvdb.Store) {
	prev := openStore
	openStore = func(kvdb.Kind, string) (kvdb.Store, error) { return store, nil }
	t.Cleanup(func() { openStore = prev })
}

func TestRunReportsCloseError(t *testing.T) {
	store := &closeFailStore{}
	withStore(t, store)

	o := defaultOptions()
	o.size = 200
	o.store = string(kvdb.Badger)
	err := run(o)
	assert.True(t, errors.Is(err, errFlush), "%v", err)
	assert.True(t, store.closed)
	assert.Len(t, store.recs, 1, "the run is stored before Close")
}

func TestShowHistoryReportsCloseError(t *testing.T) {
	store := &closeFailStore{}
	withStore(t, store)

	var buf bytes.Buffer
	err := showHistory(&buf, kvdb.Pebble, "unused")
	assert.True(t, errors.Is(err, errFlush), "%v", err)
	assert.True(t, store.closed)
	assert.Equal(t, "no stored runs\n", buf.String())
}

func TestStoreAndPrintHistory(t *testing.T) {
	store, err := kvdb.Open(kvdb.Bbolt, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, store))
	assert.Equal(t, "no stored runs\n", buf.String())

	for run := 1; run <= 2; run++ {
		require.NoError(t, storeResult(store, BenchmarkResult{
			Algorithm: "parallel_hybrid_quicksort",
			DataSize:  1234567,
			TestRun:   run,
			Pieces:    10,
			Threads:   4,
		}))
	}
	buf.Reset()
	require.NoError(t, printHistory(&buf, store))
	out := buf.String()
	assert.Contains(t, out, "run 1 ")
	assert.Contains(t, out, "run 2 ")
	assert.Contains(t, out, "n=1,234,567")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestRunPersistsResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pebble")
	o := defaultOptions()
	o.size = 500
	o.runs = 2
	o.store = string(kvdb.Pebble)
	o.storePath = path
	require.NoError(t, run(o))

	store, err := kvdb.Open(kvdb.Pebble, path)
	require.NoError(t, err)
	defer store.Close()
	n := 0
	require.NoError(t, store.Each(func(kvdb.Record) error {
		n++
		return nil
	}))
	assert.Equal(t, 2, n)
}
