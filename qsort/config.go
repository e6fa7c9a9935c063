package qsort

import "strings"

// AlternateKind selects the fallback sort used for small ranges.
type AlternateKind int

const (
	Shell AlternateKind = iota
	Insertion
)

func (k AlternateKind) String() string {
	switch k {
	case Shell:
		return "shell"
	case Insertion:
		return "insertion"
	default:
		return "unknown"
	}
}

// ParseAlternateKind accepts "s", "shell", "i" or "insertion" in any case.
func ParseAlternateKind(s string) (AlternateKind, error) {
	switch strings.ToLower(s) {
	case "s", "shell":
		return Shell, nil
	case "i", "insertion":
		return Insertion, nil
	}
	return 0, invalidConfig("unknown alternate sort %q", s)
}

// Config is set once before sorting and never modified afterwards.
type Config struct {
	// Threshold is the largest range size handed to the alternate sort.
	Threshold int
	Alternate AlternateKind
	// MedianOfThree conditions a[lo] <= a[mid] <= a[hi] before each partition.
	MedianOfThree bool

	// Multithread splits the buffer into Pieces and sorts them with at most
	// MaxWorkers goroutines. When false the whole buffer is sorted in the
	// calling goroutine.
	Multithread bool
	Pieces      int
	MaxWorkers  int
}

// DefaultConfig mirrors the defaults of the command line tool.
func DefaultConfig() Config {
	return Config{
		Threshold:   10,
		Alternate:   Shell,
		Multithread: true,
		Pieces:      10,
		MaxWorkers:  4,
	}
}

// validate checks everything that does not depend on the buffer.
func (c Config) validate() error {
	if c.Threshold < 0 {
		return invalidConfig("threshold %d is negative", c.Threshold)
	}
	if c.Alternate != Shell && c.Alternate != Insertion {
		return invalidConfig("unknown alternate sort %d", int(c.Alternate))
	}
	if c.Pieces < 1 {
		return invalidConfig("piece count %d is below 1", c.Pieces)
	}
	if c.MaxWorkers < 1 {
		return invalidConfig("max workers %d is below 1", c.MaxWorkers)
	}
	if c.MaxWorkers > c.Pieces {
		return invalidConfig("max workers %d exceeds piece count %d", c.MaxWorkers, c.Pieces)
	}
	return nil
}

// Validate reports whether c can sort a buffer of the given size. Buffers
// shorter than two elements are already sorted, so the piece count does not
// bind for them.
func (c Config) Validate(size int) error {
	if err := c.validate(); err != nil {
		return err
	}
	if size < 0 {
		return invalidConfig("buffer size %d is negative", size)
	}
	if c.Multithread && size > 1 && c.Pieces > size {
		return invalidConfig("piece count %d exceeds buffer size %d", c.Pieces, size)
	}
	return nil
}
