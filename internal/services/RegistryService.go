package services

import (
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/sequence"
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type RegistryServiceInterface interface {
	RegisterLogin(userID string, when time.Time)
	Heartbeat(userID string, when time.Time)
	SaveIdentifiers(userID string, ids []string, when time.Time) *models.SaveResult
	Records(userID string, filter models.RecordFilter) []models.Record
	UserStats(userID string, now time.Time) models.UserStats
	AllUsers(now time.Time) []models.UserSummary
	GlobalSnapshot() map[string]int64
	GetSnapshot() *models.Storage
	PutSnapshot(s *models.Storage)
	PruneAnalytics(cutoff string) int
	UserCount() int
	RecordCount() int
	Dirty() bool
	MarkDirty()
	ClearDirty()
}

// RegistryService owns the three logical stores: user profiles, per-user
// record lists and the global analytics counters. Every mutating operation
// runs under one write lock so a save applies its record append, profile
// counters and analytics increments as a single atomic step; two saves for
// the same user can never lose updates against each other.
type RegistryService struct {
	mu        sync.RWMutex
	users     map[string]*models.UserProfile
	records   map[string][]models.Record
	analytics *models.GlobalAnalytics
	dirty     atomic.Bool
	logger    providers.Logger
}

func NewRegistryService(logger providers.Logger) RegistryServiceInterface {
	return &RegistryService{
		users:     make(map[string]*models.UserProfile),
		records:   make(map[string][]models.Record),
		analytics: models.NewGlobalAnalytics(),
		logger:    logger,
	}
}

func dateOf(when time.Time) string {
	return when.Format(time.DateOnly)
}

// RegisterLogin creates the profile on first login and stamps last_login on
// every one. Counts one login for the date of `when`.
func (rs *RegistryService) RegisterLogin(userID string, when time.Time) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	profile, ok := rs.users[userID]
	if !ok {
		profile = &models.UserProfile{
			UserID:    userID,
			CreatedAt: when,
		}
		rs.users[userID] = profile
	}
	profile.LastLogin = when
	profile.LastLoginDate = dateOf(when)

	rs.analytics.IncLogin(dateOf(when))
	rs.dirty.Store(true)
}

// Heartbeat refreshes last_active. No counters change; unknown users are
// ignored so a stale tab cannot resurrect a profile.
func (rs *RegistryService) Heartbeat(userID string, when time.Time) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if profile, ok := rs.users[userID]; ok {
		profile.LastActive = when
		rs.dirty.Store(true)
	}
}

// SaveIdentifiers partitions ids against the user's history, appends the new
// ones as records dated/bucketed by `when`, and applies the per-save
// analytics increments. One call counts as one search regardless of how many
// identifiers it carries. Identifiers violating the upstream contracts
// (wrong length, already recorded) are logged and skipped, never fatal.
func (rs *RegistryService) SaveIdentifiers(userID string, ids []string, when time.Time) *models.SaveResult {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	profile, ok := rs.users[userID]
	if !ok {
		profile = &models.UserProfile{UserID: userID, CreatedAt: when}
		rs.users[userID] = profile
	}

	existing := make(map[string]struct{}, len(rs.records[userID]))
	for _, r := range rs.records[userID] {
		existing[r.ID] = struct{}{}
	}

	fresh, duplicates := sequence.Partition(ids, existing)

	date := dateOf(when)
	hour := when.Hour()

	accepted := make([]string, 0, len(fresh))
	for _, id := range fresh {
		if !sequence.ValidLength(id) {
			rs.logger.Errorf(providers.TypeApp, "Skipping identifier with invalid length %d for user %s: %s", len(id), userID, models.ErrInvalidIdentifier)
			continue
		}
		if _, seen := existing[id]; seen {
			rs.logger.Errorf(providers.TypeApp, "Skipping repeated identifier for user %s: %s", userID, models.ErrDuplicateIdentifier)
			duplicates++
			continue
		}
		existing[id] = struct{}{}
		rs.records[userID] = append(rs.records[userID], models.Record{
			ID:        id,
			Date:      date,
			Hour:      hour,
			Timestamp: when,
		})
		accepted = append(accepted, id)
	}

	rs.analytics.IncSearch(date)
	rs.analytics.AddIDs(date, hour, int64(len(accepted)))

	profile.TotalSearches++
	profile.TotalIDs += len(accepted)

	rs.dirty.Store(true)

	return &models.SaveResult{
		TotalFound:     len(ids),
		NewCount:       len(accepted),
		DuplicateCount: duplicates,
		NewIDs:         accepted,
	}
}

// Records returns the user's records passing the filter, most recent first.
func (rs *RegistryService) Records(userID string, filter models.RecordFilter) []models.Record {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	matched := make([]models.Record, 0)
	for _, r := range rs.records[userID] {
		if filter.Match(&r) {
			matched = append(matched, r)
		}
	}
	models.SortRecordsDesc(matched)
	return matched
}

func (rs *RegistryService) todayCountLocked(userID, today string) int {
	n := 0
	for _, r := range rs.records[userID] {
		if r.Date == today {
			n++
		}
	}
	return n
}

// UserStats reads the maintained per-user counters; the today count is
// derived from the record list at read time.
func (rs *RegistryService) UserStats(userID string, now time.Time) models.UserStats {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	stats := models.UserStats{Today: rs.todayCountLocked(userID, dateOf(now))}
	if profile, ok := rs.users[userID]; ok {
		stats.Total = profile.TotalIDs
		stats.Searches = profile.TotalSearches
	}
	return stats
}

// AllUsers lists every profile as an admin summary row, ordered by user id.
func (rs *RegistryService) AllUsers(now time.Time) []models.UserSummary {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	today := dateOf(now)
	summaries := make([]models.UserSummary, 0, len(rs.users))
	for id, profile := range rs.users {
		lastActive := profile.LastActive
		if lastActive.IsZero() {
			lastActive = profile.LastLogin
		}
		summaries = append(summaries, models.UserSummary{
			ID:         id,
			TotalIDs:   profile.TotalIDs,
			TodayIDs:   rs.todayCountLocked(id, today),
			Searches:   profile.TotalSearches,
			LastActive: lastActive,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// GlobalSnapshot returns the flat global counter map.
func (rs *RegistryService) GlobalSnapshot() map[string]int64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.analytics.Snapshot()
}

// GetSnapshot deep-copies the full registry state for persistence.
func (rs *RegistryService) GetSnapshot() *models.Storage {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	users := make(map[string]*models.UserProfile, len(rs.users))
	for id, profile := range rs.users {
		users[id] = profile.Clone()
	}

	records := make(map[string][]models.Record, len(rs.records))
	for id, recs := range rs.records {
		cp := make([]models.Record, len(recs))
		copy(cp, recs)
		records[id] = cp
	}

	analytics := models.NewGlobalAnalytics()
	analytics.PutData(rs.analytics.Snapshot())

	return &models.Storage{Users: users, Records: records, Analytics: analytics}
}

// PutSnapshot replaces the registry state wholesale. Nil parts load as empty.
func (rs *RegistryService) PutSnapshot(s *models.Storage) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.users = s.Users
	if rs.users == nil {
		rs.users = make(map[string]*models.UserProfile)
	}
	rs.records = s.Records
	if rs.records == nil {
		rs.records = make(map[string][]models.Record)
	}
	rs.analytics = s.Analytics
	if rs.analytics == nil {
		rs.analytics = models.NewGlobalAnalytics()
	}
}

// PruneAnalytics drops per-day counters older than cutoff.
func (rs *RegistryService) PruneAnalytics(cutoff string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	dropped := rs.analytics.PruneBefore(cutoff)
	if dropped > 0 {
		rs.dirty.Store(true)
	}
	return dropped
}

func (rs *RegistryService) UserCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.users)
}

func (rs *RegistryService) RecordCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	n := 0
	for _, recs := range rs.records {
		n += len(recs)
	}
	return n
}

func (rs *RegistryService) Dirty() bool {
	return rs.dirty.Load()
}

// MarkDirty flags unsaved state without a mutation, used by the persistence
// layer to requeue a failed save.
func (rs *RegistryService) MarkDirty() {
	rs.dirty.Store(true)
}

func (rs *RegistryService) ClearDirty() {
	rs.dirty.Store(false)
}
