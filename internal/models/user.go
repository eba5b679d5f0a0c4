package models

import "time"

// UserProfile holds the maintained per-user counters. TotalIDs and
// TotalSearches are monotonically non-decreasing and are only touched by the
// save path; TotalIDs always equals the size of the user's record list.
type UserProfile struct {
	UserID        string    `json:"user_id"`
	TotalIDs      int       `json:"total_ids"`
	TotalSearches int       `json:"total_searches"`
	CreatedAt     time.Time `json:"created_at"`
	LastLogin     time.Time `json:"last_login"`
	LastLoginDate string    `json:"last_login_date,omitempty"`
	LastActive    time.Time `json:"last_active"`
}

// Clone returns an independent copy.
func (u *UserProfile) Clone() *UserProfile {
	c := *u
	return &c
}

// UserStats is the per-user dashboard view. Today is derived from the
// record list at read time, the other two are maintained counters.
type UserStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Searches int `json:"searches"`
}

// UserSummary is one row of the admin user listing.
type UserSummary struct {
	ID         string    `json:"id"`
	TotalIDs   int       `json:"total_ids"`
	TodayIDs   int       `json:"today_ids"`
	Searches   int       `json:"searches"`
	LastActive time.Time `json:"last_active"`
}
