package models

import (
	"sort"
	"strings"
	"time"
)

// Record is one accepted identifier for a user, tagged with the calendar
// date and hour of insertion. Immutable once created.
type Record struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Hour      int       `json:"hour"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordFilter narrows a record query. Zero values mean no constraint;
// non-zero filters are AND-combined.
type RecordFilter struct {
	Date   string
	Search string
	Digits int
}

// Match reports whether r passes every set filter. The search term is
// matched as a case-insensitive substring of the identifier.
func (f RecordFilter) Match(r *Record) bool {
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Search != "" && !strings.Contains(r.ID, strings.ToLower(f.Search)) {
		return false
	}
	if f.Digits != 0 && len(r.ID) != f.Digits {
		return false
	}
	return true
}

// SortRecordsDesc orders records most recent first.
func SortRecordsDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}

// SaveResult summarizes one execute action.
type SaveResult struct {
	TotalFound     int      `json:"total_found"`
	NewCount       int      `json:"new_count"`
	DuplicateCount int      `json:"duplicate_count"`
	NewIDs         []string `json:"new_ids"`
}
