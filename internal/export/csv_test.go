package export

import (
	"bytes"
	"encoding/csv"
	"sid/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecordsCSV(t *testing.T) {
	ts := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	records := []models.Record{
		{ID: "12345678901", Date: "2026-08-28", Hour: 14, Timestamp: ts},
		{ID: "123456789012345", Date: "2026-08-28", Hour: 14, Timestamp: ts.Add(time.Minute)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "type", "date", "time"}, rows[0])
	assert.Equal(t, []string{"12345678901", "11-digit", "2026-08-28", "14:30:05"}, rows[1])
	assert.Equal(t, []string{"123456789012345", "15-digit", "2026-08-28", "14:31:05"}, rows[2])
}

func TestWriteRecordsCSV_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, nil))
	assert.Equal(t, "id,type,date,time\n", buf.String())
}
