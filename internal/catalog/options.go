package catalog

import "fmt"

// Options carries the catalog limits. They are injected, never read from globals.
type Options struct {
	PageSize       int
	MaxCompareSize int
}

// DefaultOptions returns a page size of 10 and a comparison capacity of 3.
func DefaultOptions() Options {
	return Options{PageSize: 10, MaxCompareSize: 3}
}

// Validate rejects non-positive limits.
func (o Options) Validate() error {
	if o.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", o.PageSize)
	}
	if o.MaxCompareSize < 1 {
		return fmt.Errorf("max compare size must be positive, got %d", o.MaxCompareSize)
	}
	return nil
}
