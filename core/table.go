package core

import (
	"gonum.org/v1/gonum/stat"
)

// Table is a preprocessed rating matrix stored as column slices:
// (user index, item index, score, normalized time).
type Table struct {
	Users  []int
	Items  []int
	Scores []float64
	Times  []float64
}

// NewTable creates an empty table with capacity for n rows.
func NewTable(n int) *Table {
	return &Table{
		Users:  make([]int, 0, n),
		Items:  make([]int, 0, n),
		Scores: make([]float64, 0, n),
		Times:  make([]float64, 0, n),
	}
}

// Len returns the number of rows.
func (table *Table) Len() int {
	return len(table.Scores)
}

// Get returns the i-th row.
func (table *Table) Get(i int) (int, int, float64, float64) {
	return table.Users[i], table.Items[i], table.Scores[i], table.Times[i]
}

// Append adds a row to the table.
func (table *Table) Append(user, item int, score, time float64) {
	table.Users = append(table.Users, user)
	table.Items = append(table.Items, item)
	table.Scores = append(table.Scores, score)
	table.Times = append(table.Times, time)
}

// MeanScore returns the mean rating over all rows.
func (table *Table) MeanScore() float64 {
	return stat.Mean(table.Scores, nil)
}

// MeanTime returns the mean normalized time over all rows.
func (table *Table) MeanTime() float64 {
	return stat.Mean(table.Times, nil)
}

// UserCount returns one more than the largest user index, the dense user
// dimension of the table.
func (table *Table) UserCount() int {
	count := 0
	for _, user := range table.Users {
		if user+1 > count {
			count = user + 1
		}
	}
	return count
}

// ItemCount returns one more than the largest item index.
func (table *Table) ItemCount() int {
	count := 0
	for _, item := range table.Items {
		if item+1 > count {
			count = item + 1
		}
	}
	return count
}

// UserRatedItems groups item indices by user index.
func (table *Table) UserRatedItems(userCount int) [][]int {
	rated := make([][]int, userCount)
	for i := range table.Users {
		rated[table.Users[i]] = append(rated[table.Users[i]], table.Items[i])
	}
	return rated
}

// Subset returns a new table containing the selected rows.
func (table *Table) Subset(indices []int) *Table {
	subset := NewTable(len(indices))
	for _, i := range indices {
		subset.Append(table.Users[i], table.Items[i], table.Scores[i], table.Times[i])
	}
	return subset
}
