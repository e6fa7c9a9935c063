// Package kvdb persists benchmark runs in an embedded key-value store.
package kvdb

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Kind names a storage backend.
type Kind string

const (
	None   Kind = "none"
	Bbolt  Kind = "bbolt"
	Badger Kind = "badger"
	Pebble Kind = "pebble"
)

const (
	bboltDBFile = "bbolt.db"
	badgerDir   = "badger"
	pebbleDir   = "pebble"
	bucketName  = "runs"
	keySize     = 12
)

// ErrUnknownKind is returned by ParseKind and Open.
var ErrUnknownKind = errors.New("unknown store kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case None, Bbolt, Badger, Pebble:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// DefaultPath is the file (bbolt) or directory (badger, pebble) used when no
// path is given.
func DefaultPath(k Kind) string {
	switch k {
	case Bbolt:
		return bboltDBFile
	case Badger:
		return badgerDir
	case Pebble:
		return pebbleDir
	}
	return ""
}

// Record is one stored run. Data is opaque to the store.
type Record struct {
	Timestamp time.Time
	Run       int
	Data      []byte
}

// Key orders records by timestamp, then run number.
func (r Record) Key() []byte {
	var k [keySize]byte
	binary.BigEndian.PutUint64(k[:8], uint64(r.Timestamp.UnixNano()))
	binary.BigEndian.PutUint32(k[8:], uint32(r.Run))
	return k[:]
}

func decodeRecord(key, value []byte) (Record, error) {
	if len(key) != keySize {
		return Record{}, errors.Newf("malformed key of %d bytes", len(key))
	}
	return Record{
		Timestamp: time.Unix(0, int64(binary.BigEndian.Uint64(key[:8]))),
		Run:       int(binary.BigEndian.Uint32(key[8:])),
		Data:      bytes.Clone(value),
	}, nil
}

// Store is implemented by every backend. Each visits records in key order
// and stops at the first error returned by fn.
type Store interface {
	Put(rec Record) error
	Each(fn func(Record) error) error
	Close() error
}

// Open opens (creating if needed) a store of the given kind at path. An
// empty path selects DefaultPath(kind).
func Open(kind Kind, path string) (Store, error) {
	if path == "" {
		path = DefaultPath(kind)
	}
	var (
		s   Store
		err error
	)
	switch kind {
	case Bbolt:
		s, err = openBbolt(path)
	case Badger:
		s, err = openBadger(path)
	case Pebble:
		s, err = openPebble(path)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "cannot open %q", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store at %s", kind, path)
	}
	return s, nil
}
