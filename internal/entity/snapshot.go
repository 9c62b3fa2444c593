package entity

import "time"

// Snapshot is one full upstream delivery: the entire catalog and order
// book as of FetchedAt. A later snapshot supersedes an earlier one
// wholesale; there is no incremental merge.
type Snapshot struct {
	Products  []Product
	Orders    []Order
	FetchedAt time.Time
}
