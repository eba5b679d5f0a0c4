package models

import (
	"strconv"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalAnalytics_IncLogin(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.IncLogin("2026-08-28")
	ga.IncLogin("2026-08-28")
	ga.IncLogin("2026-08-29")

	flat := ga.Snapshot()
	assert.Equal(t, int64(2), flat["logins_2026-08-28"])
	assert.Equal(t, int64(1), flat["logins_2026-08-29"])
}

func TestGlobalAnalytics_IncSearch(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.IncSearch("2026-08-28")
	ga.IncSearch("2026-08-28")

	flat := ga.Snapshot()
	assert.Equal(t, int64(2), flat["total_searches"])
	assert.Equal(t, int64(2), flat["searches_2026-08-28"])
}

func TestGlobalAnalytics_AddIDs(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.AddIDs("2026-08-28", 14, 3)
	ga.AddIDs("2026-08-28", 15, 2)

	flat := ga.Snapshot()
	assert.Equal(t, int64(5), flat["total_ids"])
	assert.Equal(t, int64(5), flat["ids_2026-08-28"])
	assert.Equal(t, int64(3), flat["hour_14"])
	assert.Equal(t, int64(2), flat["hour_15"])
}

func TestGlobalAnalytics_AddIDsIgnoresNonPositiveAndBadHour(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.AddIDs("2026-08-28", 14, 0)
	ga.AddIDs("2026-08-28", -1, 5)
	ga.AddIDs("2026-08-28", 24, 5)

	ids, searches := ga.Totals()
	assert.Equal(t, int64(0), ids)
	assert.Equal(t, int64(0), searches)
}

func TestGlobalAnalytics_HourSumEqualsTotal(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.AddIDs("2026-08-28", 0, 1)
	ga.AddIDs("2026-08-28", 9, 4)
	ga.AddIDs("2026-08-29", 23, 2)

	flat := ga.Snapshot()
	var hourSum int64
	for h := 0; h < 24; h++ {
		hourSum += flat["hour_"+strconv.Itoa(h)]
	}
	assert.Equal(t, flat["total_ids"], hourSum)
}

func TestGlobalAnalytics_SnapshotOmitsZeroBuckets(t *testing.T) {
	ga := NewGlobalAnalytics()
	flat := ga.Snapshot()

	assert.Equal(t, int64(0), flat["total_ids"])
	assert.Equal(t, int64(0), flat["total_searches"])
	assert.Len(t, flat, 2)
}

func TestGlobalAnalytics_PutDataRoundTrip(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.IncLogin("2026-08-28")
	ga.IncSearch("2026-08-28")
	ga.AddIDs("2026-08-28", 7, 4)

	restored := NewGlobalAnalytics()
	restored.PutData(ga.Snapshot())
	assert.Equal(t, ga.Snapshot(), restored.Snapshot())
}

func TestGlobalAnalytics_PutDataIgnoresUnknownKeys(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.PutData(map[string]int64{
		"total_ids": 3,
		"hour_99":   7,
		"bogus":     1,
	})

	flat := ga.Snapshot()
	assert.Equal(t, int64(3), flat["total_ids"])
	assert.NotContains(t, flat, "hour_99")
	assert.NotContains(t, flat, "bogus")
}

func TestGlobalAnalytics_JSONRoundTrip(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.IncLogin("2026-08-28")
	ga.AddIDs("2026-08-28", 12, 2)

	data, err := json.Marshal(ga)
	require.NoError(t, err)

	restored := NewGlobalAnalytics()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, ga.Snapshot(), restored.Snapshot())
}

func TestGlobalAnalytics_JSONIsFlatCounterMap(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.AddIDs("2026-08-28", 5, 1)

	data, err := json.Marshal(ga)
	require.NoError(t, err)

	var flat map[string]int64
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, int64(1), flat["hour_5"])
	assert.Equal(t, int64(1), flat["ids_2026-08-28"])
}

func TestGlobalAnalytics_PruneBefore(t *testing.T) {
	ga := NewGlobalAnalytics()
	ga.IncLogin("2026-07-01")
	ga.IncLogin("2026-08-28")
	ga.AddIDs("2026-07-01", 3, 2)

	dropped := ga.PruneBefore("2026-08-01")
	assert.Equal(t, 1, dropped)

	flat := ga.Snapshot()
	assert.NotContains(t, flat, "logins_2026-07-01")
	assert.NotContains(t, flat, "ids_2026-07-01")
	assert.Equal(t, int64(1), flat["logins_2026-08-28"])
	// Lifetime counters survive the prune.
	assert.Equal(t, int64(2), flat["total_ids"])
	assert.Equal(t, int64(2), flat["hour_3"])
}
