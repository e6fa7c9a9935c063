package kvdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s Store) []Record {
	t.Helper()
	var out []Record
	require.NoError(t, s.Each(func(r Record) error {
		out = append(out, r)
		return nil
	}))
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	base := time.Unix(1700000000, 0)
	records := []Record{
		{Timestamp: base.Add(2 * time.Second), Run: 1, Data: []byte(`{"run":"c"}`)},
		{Timestamp: base, Run: 2, Data: []byte(`{"run":"b"}`)},
		{Timestamp: base, Run: 1, Data: []byte(`{"run":"a"}`)},
	}
	for _, kind := range []Kind{Bbolt, Badger, Pebble} {
		t.Run(string(kind), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath(kind))
			s, err := Open(kind, path)
			require.NoError(t, err)
			for _, r := range records {
				require.NoError(t, s.Put(r))
			}
			got := collect(t, s)
			require.Len(t, got, 3)
			assert.Equal(t, `{"run":"a"}`, string(got[0].Data))
			assert.Equal(t, `{"run":"b"}`, string(got[1].Data))
			assert.Equal(t, `{"run":"c"}`, string(got[2].Data))
			assert.True(t, got[0].Timestamp.Equal(base))
			assert.Equal(t, 2, got[1].Run)
			require.NoError(t, s.Close())

			// reopening keeps the records
			s, err = Open(kind, path)
			require.NoError(t, err)
			defer s.Close()
			assert.Len(t, collect(t, s), 3)
		})
	}
}

func TestStoreEachStopsOnError(t *testing.T) {
	s, err := Open(Bbolt, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()
	for i := range 3 {
		require.NoError(t, s.Put(Record{Timestamp: time.Unix(int64(i), 0), Run: i, Data: []byte("{}")}))
	}
	stop := errors.New("stop")
	seen := 0
	err = s.Each(func(Record) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"none", "BBOLT", "badger", "Pebble"} {
		_, err := ParseKind(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseKind("leveldb")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Open(None, "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRecordKeyOrder(t *testing.T) {
	a := Record{Timestamp: time.Unix(10, 0), Run: 7}.Key()
	b := Record{Timestamp: time.Unix(10, 1), Run: 0}.Key()
	assert.Len(t, a, keySize)
	assert.Less(t, string(a), string(b), "keys sort by time first")
}
