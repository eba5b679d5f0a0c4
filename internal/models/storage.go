package models

// Storage is the transfer envelope between the registry and the blob
// persistence layer. Each field maps to one named blob: users, records,
// analytics. Record slices keep insertion order; readers sort on query.
type Storage struct {
	Users     map[string]*UserProfile `json:"users"`
	Records   map[string][]Record     `json:"records"`
	Analytics *GlobalAnalytics        `json:"analytics"`
}
