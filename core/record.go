package core

import "time"

// Rating is a single rating event. Records are produced by the loader and
// never mutated afterwards.
type Rating struct {
	UserId    string
	ItemId    string
	Score     float64
	Timestamp time.Time
}
