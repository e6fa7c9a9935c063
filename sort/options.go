package main

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/kvdb"
	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/qsort"
)

var (
	errInvalidInput = errors.New("invalid input")
	errFailure      = errors.New("sort verification failed")
)

const (
	inputPermutation = "permutation"
	inputRandom      = "random"
)

// options holds the raw command line values.
type options struct {
	size        int
	threshold   int
	alternate   string
	seed        int64
	multithread string
	pieces      int
	threads     int
	median      string

	input     string
	runs      int
	reportDir string
	store     string
	storePath string
}

func defaultOptions() options {
	def := qsort.DefaultConfig()
	return options{
		threshold:   def.Threshold,
		alternate:   "s",
		multithread: "y",
		pieces:      def.Pieces,
		threads:     def.MaxWorkers,
		median:      "n",
		input:       inputPermutation,
		runs:        1,
		store:       string(kvdb.None),
	}
}

// parseYesNo accepts exactly one letter, y or n, in either case.
func parseYesNo(name, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, errors.Wrapf(errInvalidInput, "--%s must be y or n, got %q", name, s)
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errInvalidInput, format, args...)
}

// config validates the options and builds the sorter configuration.
func (o options) config() (qsort.Config, error) {
	var cfg qsort.Config
	if o.size < 1 {
		return cfg, invalid("--size must be at least 1, got %d", o.size)
	}
	if o.threshold < 0 {
		return cfg, invalid("--threshold must not be negative, got %d", o.threshold)
	}
	if len(o.alternate) != 1 {
		return cfg, invalid("--alternate must be s or i, got %q", o.alternate)
	}
	alt, err := qsort.ParseAlternateKind(o.alternate)
	if err != nil {
		return cfg, invalid("--alternate must be s or i, got %q", o.alternate)
	}
	multithread, err := parseYesNo("multithread", o.multithread)
	if err != nil {
		return cfg, err
	}
	median, err := parseYesNo("median3", o.median)
	if err != nil {
		return cfg, err
	}
	if o.pieces < 1 || o.threads < 1 {
		return cfg, invalid("--pieces and --threads must be at least 1, got %d and %d", o.pieces, o.threads)
	}
	if o.threads > o.pieces {
		return cfg, invalid("--threads %d exceeds --pieces %d", o.threads, o.pieces)
	}
	if multithread && o.pieces > o.size {
		return cfg, invalid("--pieces %d exceeds --size %d", o.pieces, o.size)
	}
	if o.input != inputPermutation && o.input != inputRandom {
		return cfg, invalid("--input must be %s or %s, got %q", inputPermutation, inputRandom, o.input)
	}
	if o.runs < 1 {
		return cfg, invalid("--runs must be at least 1, got %d", o.runs)
	}
	if _, err := kvdb.ParseKind(o.store); err != nil {
		return cfg, errors.Mark(err, errInvalidInput)
	}

	cfg = qsort.Config{
		Threshold:     o.threshold,
		Alternate:     alt,
		MedianOfThree: median,
		Multithread:   multithread,
		Pieces:        o.pieces,
		MaxWorkers:    o.threads,
	}
	if err := cfg.Validate(o.size); err != nil {
		return qsort.Config{}, errors.Mark(err, errInvalidInput)
	}
	return cfg, nil
}
