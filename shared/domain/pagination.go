package domain

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a clamped page request. Offset is Size*Number.
type Page struct {
	Size   int
	Number int
}

// NewPage clamps size into [1, MaxPageSize] and number to be non-negative
// and small enough that Offset+Limit fits in an int. Out-of-range input
// degrades to the nearest valid page instead of failing.
func NewPage(size, number int) Page {
	size = min(max(size, 1), MaxPageSize)
	number = min(max(number, 0), (math.MaxInt-size)/size)
	return Page{Size: size, Number: number}
}

func (p Page) Offset() int {
	return p.Size * p.Number
}

func (p Page) Limit() int {
	return p.Size
}
