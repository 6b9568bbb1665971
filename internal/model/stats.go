package model

import "time"

// Stats holds the server-computed summary counters shown alongside a
// resource list. Counters that do not apply to a resource are zero.
// Stats are always refetched after a mutation, never computed locally.
type Stats struct {
	Total     int     `json:"total"`
	Active    int     `json:"active"`
	Pending   int     `json:"pending"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

// Snapshot is a last-known-good copy of a resource list, kept in the
// local cache so a restart can show stale-but-present data while the
// first load runs.
type Snapshot struct {
	Kind      string    `json:"kind"`
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetchedAt"`
}
