package core

import "sort"

// LeaveLastOut splits a rating table into a train set and a test set. Rows
// are ordered by time ascending and, for every user with more than one
// rating, the chronologically last row becomes a test row while all earlier
// rows become train rows. Users with a single rating contribute to the train
// set only.
func LeaveLastOut(table *Table) (*Table, *Table) {
	// Sort row indices by time, stable to keep encounter order within a
	// calendar period.
	order := make([]int, table.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return table.Times[order[i]] < table.Times[order[j]]
	})
	// Group rows by user, preserving chronological order.
	userRows := make(map[int][]int)
	users := make([]int, 0)
	for _, row := range order {
		user := table.Users[row]
		if _, exist := userRows[user]; !exist {
			users = append(users, user)
		}
		userRows[user] = append(userRows[user], row)
	}
	trainRows := make([]int, 0, table.Len())
	testRows := make([]int, 0, len(userRows))
	for _, user := range users {
		rows := userRows[user]
		if len(rows) > 1 {
			trainRows = append(trainRows, rows[:len(rows)-1]...)
			testRows = append(testRows, rows[len(rows)-1])
		} else {
			trainRows = append(trainRows, rows...)
		}
	}
	return table.Subset(trainRows), table.Subset(testRows)
}
