package sqlite

import "strings"

// isDiskFull matches SQLITE_FULL, raised when the file or max_page_count
// limit is reached.
func isDiskFull(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "database or disk is full")
}
