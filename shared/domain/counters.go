package domain

import "fmt"

// CounterDrift is a denormalized counter that disagrees with a fresh count.
type CounterDrift struct {
	Table   string // "boards" or "threads"
	Id      int64
	Stored  int
	Recount int
}

func (d CounterDrift) String() string {
	return fmt.Sprintf("%s[%d]: stored=%d recount=%d", d.Table, d.Id, d.Stored, d.Recount)
}
