// Package rounds manages the singleton round record that gates the whole
// mini-game: hacking and decay only happen while the round is active.
package rounds

import "time"

// Round is the single time window the game runs in. Exactly one record
// exists once EnsureExists has run.
type Round struct {
	IsActive  bool
	StartTime time.Time
	EndTime   time.Time
}

// UpdateParams carries a partial round update. Nil fields keep their prior
// values.
type UpdateParams struct {
	IsActive  *bool
	StartTime *time.Time
	EndTime   *time.Time
}
