// Package job contains the background jobs scheduled by the web server.
package job

import (
	"os"

	"github.com/imperiumao/gm-panel/logger"
)

// RotateLogsJob copies the panel log file to its .prev companion and
// truncates it, keeping one previous generation around.
type RotateLogsJob struct{}

func NewRotateLogsJob() *RotateLogsJob {
	return new(RotateLogsJob)
}

// Run implements the cron Job interface.
func (j *RotateLogsJob) Run() {
	logPath := logger.GetLogFilePath()
	prevPath := logPath + ".prev"

	content, err := os.ReadFile(logPath)
	if err != nil {
		logger.Warning("rotate logs job err:", err)
		return
	}

	if err := os.WriteFile(prevPath, content, 0o660); err != nil {
		logger.Warning("rotate logs job err:", err)
		return
	}

	if err := os.Truncate(logPath, 0); err != nil {
		logger.Warning("rotate logs job err:", err)
	}
}
