package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: glogLogger{prefix: "pebble: "}})
	if err != nil {
		return nil, err
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Put(rec Record) error {
	return s.db.Set(rec.Key(), rec.Data, pebble.Sync)
}

func (s *pebbleStore) Each(fn func(Record) error) (err error) {
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, it.Close())
	}()
	for it.First(); it.Valid(); it.Next() {
		rec, err := decodeRecord(it.Key(), it.Value())
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return it.Error()
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
