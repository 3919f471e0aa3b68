package service

import (
	"strconv"

	"github.com/imperiumao/gm-panel/logger"
)

// ServerService exposes runtime information of the panel process.
type ServerService struct{}

// GetLogs returns up to count buffered log entries at or below the given
// level, newest first.
func (s *ServerService) GetLogs(count string, level string) []string {
	c, err := strconv.Atoi(count)
	if err != nil || c < 1 {
		c = 50
	}
	return logger.GetLogs(c, level)
}
