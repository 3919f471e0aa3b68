package job

import (
	"github.com/imperiumao/gm-panel/logger"
	"github.com/imperiumao/gm-panel/web/service"
)

// CheckEventsEndpointJob periodically probes the external events API so that
// operators notice a broken audit channel; delivery itself never retries.
type CheckEventsEndpointJob struct {
	eventsService service.EventsService
}

func NewCheckEventsEndpointJob() *CheckEventsEndpointJob {
	return new(CheckEventsEndpointJob)
}

// Run implements the cron Job interface.
func (j *CheckEventsEndpointJob) Run() {
	if err := j.eventsService.CheckEndpoint(); err != nil {
		logger.Warning("events endpoint unreachable:", err)
	}
}
