package btrblocks

import (
	"fmt"

	"github.com/arloliu/vortex/internal/options"
)

// Config holds the tunables of the cascading compressor, built with
// functional options the same way a NumericEncoderOption configures an
// encoder.
type Config struct {
	// AllowedCascading bounds recursion depth when a container scheme
	// (ZigZag, Dict, RunEnd, Sparse) compresses its sub-arrays.
	AllowedCascading int
	// MinRatio is the minimum uncompressed/compressed size ratio a
	// scheme must clear to be chosen over SchemeUncompressed.
	MinRatio float64
	// RunEndMinAverageRunLength is the cut-off below which RunEnd is not
	// considered (default 4).
	RunEndMinAverageRunLength float64
	// SparseMinDominance is the minimum fraction (null or single-value)
	// dominance required for Sparse to be considered (default 0.90).
	SparseMinDominance float64
	// SampleSize bounds how many rows the stats bundle scans; larger
	// arrays are sampled evenly rather than scanned in full.
	SampleSize int

	excluded map[Scheme]bool
}

// DefaultConfig returns the Config used when no options are supplied:
// cascade depth 3, minimum ratio 1.0 (must strictly shrink), RunEnd
// average-run-length cutoff 4, Sparse dominance cutoff 90%.
func DefaultConfig() Config {
	return Config{
		AllowedCascading:          3,
		MinRatio:                  1.0,
		RunEndMinAverageRunLength: 4,
		SparseMinDominance:        0.90,
		SampleSize:                8192,
		excluded:                  map[Scheme]bool{},
	}
}

// WithAllowedCascading overrides the maximum recursion depth.
func WithAllowedCascading(n int) options.Option[*Config] {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("btrblocks: allowed cascading must be >= 0, got %d", n)
		}
		c.AllowedCascading = n

		return nil
	})
}

// WithMinRatio overrides the minimum compression ratio a scheme must
// clear to be preferred over leaving the column uncompressed.
func WithMinRatio(ratio float64) options.Option[*Config] {
	return options.New(func(c *Config) error {
		if ratio <= 0 {
			return fmt.Errorf("btrblocks: min ratio must be > 0, got %f", ratio)
		}
		c.MinRatio = ratio

		return nil
	})
}

// WithExcludedSchemes prevents the listed schemes from ever being chosen,
// regardless of their estimated ratio.
func WithExcludedSchemes(schemes ...Scheme) options.Option[*Config] {
	return options.NoError(func(c *Config) {
		if c.excluded == nil {
			c.excluded = map[Scheme]bool{}
		}
		for _, s := range schemes {
			c.excluded[s] = true
		}
	})
}

// WithSampleSize overrides how many rows the stats bundle scans before
// falling back to even-stride sampling.
func WithSampleSize(n int) options.Option[*Config] {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("btrblocks: sample size must be > 0, got %d", n)
		}
		c.SampleSize = n

		return nil
	})
}

func (c *Config) isExcluded(s Scheme) bool {
	return c.excluded != nil && c.excluded[s]
}
