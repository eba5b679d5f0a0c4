package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rec(id, date string, hour int, ts time.Time) Record {
	return Record{ID: id, Date: date, Hour: hour, Timestamp: ts}
}

func TestRecordFilter_NoConstraints(t *testing.T) {
	r := rec("12345678901", "2026-08-28", 10, time.Now())
	assert.True(t, RecordFilter{}.Match(&r))
}

func TestRecordFilter_Date(t *testing.T) {
	r := rec("12345678901", "2026-08-28", 10, time.Now())
	assert.True(t, RecordFilter{Date: "2026-08-28"}.Match(&r))
	assert.False(t, RecordFilter{Date: "2026-08-27"}.Match(&r))
}

func TestRecordFilter_Search(t *testing.T) {
	r := rec("12345678901", "2026-08-28", 10, time.Now())
	assert.True(t, RecordFilter{Search: "345678"}.Match(&r))
	assert.False(t, RecordFilter{Search: "999"}.Match(&r))
}

func TestRecordFilter_Digits(t *testing.T) {
	short := rec("12345678901", "2026-08-28", 10, time.Now())
	long := rec("123456789012345", "2026-08-28", 10, time.Now())

	assert.True(t, RecordFilter{Digits: 11}.Match(&short))
	assert.False(t, RecordFilter{Digits: 15}.Match(&short))
	assert.True(t, RecordFilter{Digits: 15}.Match(&long))
}

func TestRecordFilter_AndCombined(t *testing.T) {
	r := rec("12345678901", "2026-08-28", 10, time.Now())
	assert.True(t, RecordFilter{Date: "2026-08-28", Search: "123", Digits: 11}.Match(&r))
	assert.False(t, RecordFilter{Date: "2026-08-28", Search: "123", Digits: 15}.Match(&r))
}

func TestSortRecordsDesc(t *testing.T) {
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", "2026-08-28", 10, base),
		rec("c", "2026-08-28", 12, base.Add(2*time.Hour)),
		rec("b", "2026-08-28", 11, base.Add(time.Hour)),
	}

	SortRecordsDesc(records)

	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
}

func TestUserProfile_Clone(t *testing.T) {
	p := &UserProfile{UserID: "u1", TotalIDs: 3}
	c := p.Clone()
	c.TotalIDs = 99
	assert.Equal(t, 3, p.TotalIDs)
}
