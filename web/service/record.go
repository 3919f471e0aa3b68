package service

import (
	"fmt"
	"strconv"

	"github.com/imperiumao/gm-panel/database"
	"github.com/imperiumao/gm-panel/database/model"
)

// fallback palette, used when the servers table has not been seeded
var defaultServerColors = map[int]string{
	1: "#F78181",
	2: "#81BEF7",
	3: "#F3F781",
}

// RecordService queries the in-game event records of a user.
type RecordService struct{}

// GetUserRecords returns the user's records whose created_at falls in the
// given month and year and that have been touched since creation
// (created_at differs from updated_at). A positive server id narrows the
// result to that server; otherwise the records of all servers are returned
// ordered ascending by server id.
func (s *RecordService) GetUserRecords(userID, month, year, server int) ([]model.Record, error) {
	db := database.GetDB()

	query := db.Model(&model.Record{}).
		Where("user_id = ?", userID).
		Where("strftime('%m', created_at) = ?", fmt.Sprintf("%02d", month)).
		Where("strftime('%Y', created_at) = ?", strconv.Itoa(year)).
		Where("created_at <> updated_at")

	if server > 0 {
		query = query.Where("server_id = ?", server)
	} else {
		query = query.Order("server_id ASC")
	}

	records := make([]model.Record, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}
	return records, nil
}

// GetServerColors returns the server id to display color mapping.
func (s *RecordService) GetServerColors() map[int]string {
	db := database.GetDB()

	var servers []model.Server
	if err := db.Find(&servers).Error; err != nil || len(servers) == 0 {
		return defaultServerColors
	}

	colors := make(map[int]string, len(servers))
	for _, server := range servers {
		colors[server.Id] = server.Color
	}
	return colors
}
