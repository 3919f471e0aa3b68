package service

import (
	"testing"
	"time"

	"github.com/imperiumao/gm-panel/database"
	"github.com/imperiumao/gm-panel/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateRecord(t *testing.T, userID, serverID int, created time.Time, touched bool) model.Record {
	t.Helper()

	updated := created
	if touched {
		updated = created.Add(time.Hour)
	}
	record := model.Record{
		UserId:    userID,
		ServerId:  serverID,
		Event:     "duel",
		CreatedAt: created,
		UpdatedAt: updated,
	}
	require.NoError(t, database.GetDB().Create(&record).Error)
	return record
}

func TestGetUserRecordsFilter(t *testing.T) {
	setup()
	defer teardown()

	svc := RecordService{}
	march := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	// touched records in March 2026 on three servers, inserted out of order
	mustCreateRecord(t, 42, 3, march, true)
	mustCreateRecord(t, 42, 1, march.Add(24*time.Hour), true)
	mustCreateRecord(t, 42, 2, march.Add(48*time.Hour), true)

	// excluded: untouched, wrong month, wrong year, other user
	mustCreateRecord(t, 42, 1, march, false)
	mustCreateRecord(t, 42, 1, march.AddDate(0, 1, 0), true)
	mustCreateRecord(t, 42, 1, march.AddDate(1, 0, 0), true)
	mustCreateRecord(t, 7, 1, march, true)

	// no server filter: all three, ascending by server id
	records, err := svc.GetUserRecords(42, 3, 2026, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].ServerId)
	assert.Equal(t, 2, records[1].ServerId)
	assert.Equal(t, 3, records[2].ServerId)

	// server filter narrows to one server
	records, err = svc.GetUserRecords(42, 3, 2026, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].ServerId)

	// a month with nothing yields an empty result, not an error
	records, err = svc.GetUserRecords(42, 12, 2026, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetUserRecordsExcludesUntouched(t *testing.T) {
	setup()
	defer teardown()

	svc := RecordService{}
	june := time.Date(2026, time.June, 1, 8, 30, 0, 0, time.UTC)

	mustCreateRecord(t, 5, 1, june, false)

	records, err := svc.GetUserRecords(5, 6, 2026, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetServerColors(t *testing.T) {
	setup()
	defer teardown()

	svc := RecordService{}

	colors := svc.GetServerColors()
	assert.Equal(t, "#F78181", colors[1])
	assert.Equal(t, "#81BEF7", colors[2])
	assert.Equal(t, "#F3F781", colors[3])
}
