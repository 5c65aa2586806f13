package core

import (
	"time"
)

// CalendarTime maps a timestamp to the coarse linear scale year + month/12.
func CalendarTime(ts time.Time) float64 {
	return float64(ts.Year()) + float64(ts.Month())/12.0
}

// NormalizeTime maps a timestamp into [0, 1] between the dataset bounds.
// A single-period dataset (tMin == tMax) degenerates to the constant 0
// instead of propagating NaN.
func NormalizeTime(ts time.Time, tMin, tMax float64) float64 {
	if tMax <= tMin {
		return 0
	}
	return (CalendarTime(ts) - tMin) / (tMax - tMin)
}

// Preprocess remaps identifiers to dense indices in first-seen order and
// normalizes timestamps. It returns the rating table, the two frozen
// indexers and the calendar time bounds required at inference.
func Preprocess(ratings []Rating) (*Table, *Indexer, *Indexer, float64, float64) {
	// Compute calendar time bounds
	var tMin, tMax float64
	for i, rating := range ratings {
		t := CalendarTime(rating.Timestamp)
		if i == 0 || t < tMin {
			tMin = t
		}
		if i == 0 || t > tMax {
			tMax = t
		}
	}
	// Build the table
	users := NewIndexer()
	items := NewIndexer()
	table := NewTable(len(ratings))
	for _, rating := range ratings {
		table.Append(
			users.Add(rating.UserId),
			items.Add(rating.ItemId),
			rating.Score,
			NormalizeTime(rating.Timestamp, tMin, tMax))
	}
	return table, users, items, tMin, tMax
}
