package models

import (
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// DayCounters holds the per-date global counters.
type DayCounters struct {
	Logins   int64
	Searches int64
	IDs      int64
}

// Counter-name building blocks of the flat persisted layout:
// logins_<date>, searches_<date>, ids_<date>, hour_<0..23>,
// total_ids, total_searches.
const (
	keyTotalIDs      = "total_ids"
	keyTotalSearches = "total_searches"
	prefixHour       = "hour_"
	prefixLogins     = "logins_"
	prefixSearches   = "searches_"
	prefixIDs        = "ids_"
)

// GlobalAnalytics keeps the global usage counters: a fixed hour-of-day
// array, explicit per-date counters and two lifetime totals. All counters
// are monotonically non-decreasing and only ever incremented, never
// recomputed from stored records. The flat counter-name map of the original
// persisted layout is preserved through Snapshot/PutData and the JSON codec.
type GlobalAnalytics struct {
	mu            sync.RWMutex
	totalIDs      int64
	totalSearches int64
	hours         [24]int64
	days          map[string]*DayCounters
}

func NewGlobalAnalytics() *GlobalAnalytics {
	return &GlobalAnalytics{days: make(map[string]*DayCounters)}
}

func (ga *GlobalAnalytics) day(date string) *DayCounters {
	d, ok := ga.days[date]
	if !ok {
		d = &DayCounters{}
		ga.days[date] = d
	}
	return d
}

// IncLogin counts one login on the given date.
func (ga *GlobalAnalytics) IncLogin(date string) {
	ga.mu.Lock()
	defer ga.mu.Unlock()
	ga.day(date).Logins++
}

// IncSearch counts one execute action on the given date.
func (ga *GlobalAnalytics) IncSearch(date string) {
	ga.mu.Lock()
	defer ga.mu.Unlock()
	ga.totalSearches++
	ga.day(date).Searches++
}

// AddIDs counts n newly accepted identifiers for the given date and hour.
func (ga *GlobalAnalytics) AddIDs(date string, hour int, n int64) {
	if n <= 0 || hour < 0 || hour > 23 {
		return
	}
	ga.mu.Lock()
	defer ga.mu.Unlock()
	ga.totalIDs += n
	ga.hours[hour] += n
	ga.day(date).IDs += n
}

// Totals returns the lifetime identifier and search counts.
func (ga *GlobalAnalytics) Totals() (ids, searches int64) {
	ga.mu.RLock()
	defer ga.mu.RUnlock()
	return ga.totalIDs, ga.totalSearches
}

// Snapshot flattens the counters into the persisted counter-name map.
// The two totals are always present; hour and day counters only when set.
func (ga *GlobalAnalytics) Snapshot() map[string]int64 {
	ga.mu.RLock()
	defer ga.mu.RUnlock()

	flat := make(map[string]int64, 2+len(ga.days)*3+24)
	flat[keyTotalIDs] = ga.totalIDs
	flat[keyTotalSearches] = ga.totalSearches
	for h, n := range ga.hours {
		if n > 0 {
			flat[prefixHour+strconv.Itoa(h)] = n
		}
	}
	for date, d := range ga.days {
		if d.Logins > 0 {
			flat[prefixLogins+date] = d.Logins
		}
		if d.Searches > 0 {
			flat[prefixSearches+date] = d.Searches
		}
		if d.IDs > 0 {
			flat[prefixIDs+date] = d.IDs
		}
	}
	return flat
}

// PutData replaces all counters from a flat counter-name map.
// Unknown counter names are ignored.
func (ga *GlobalAnalytics) PutData(flat map[string]int64) {
	ga.mu.Lock()
	defer ga.mu.Unlock()

	ga.totalIDs = 0
	ga.totalSearches = 0
	ga.hours = [24]int64{}
	ga.days = make(map[string]*DayCounters)

	for name, n := range flat {
		switch {
		case name == keyTotalIDs:
			ga.totalIDs = n
		case name == keyTotalSearches:
			ga.totalSearches = n
		case strings.HasPrefix(name, prefixHour):
			if h, err := strconv.Atoi(name[len(prefixHour):]); err == nil && h >= 0 && h <= 23 {
				ga.hours[h] = n
			}
		case strings.HasPrefix(name, prefixLogins):
			ga.day(name[len(prefixLogins):]).Logins = n
		case strings.HasPrefix(name, prefixSearches):
			ga.day(name[len(prefixSearches):]).Searches = n
		case strings.HasPrefix(name, prefixIDs):
			ga.day(name[len(prefixIDs):]).IDs = n
		}
	}
}

// PruneBefore drops day counters for dates before cutoff (YYYY-MM-DD dates
// order lexicographically). Hour buckets and totals are lifetime counters
// and stay untouched. Returns the number of dropped dates.
func (ga *GlobalAnalytics) PruneBefore(cutoff string) int {
	ga.mu.Lock()
	defer ga.mu.Unlock()

	dropped := 0
	for date := range ga.days {
		if date < cutoff {
			delete(ga.days, date)
			dropped++
		}
	}
	return dropped
}

func (ga *GlobalAnalytics) MarshalJSON() ([]byte, error) {
	return json.Marshal(ga.Snapshot())
}

func (ga *GlobalAnalytics) UnmarshalJSON(data []byte) error {
	var flat map[string]int64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if ga.days == nil {
		ga.days = make(map[string]*DayCounters)
	}
	ga.PutData(flat)
	return nil
}
