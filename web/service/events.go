package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/imperiumao/gm-panel/config"
	"github.com/imperiumao/gm-panel/logger"
	"github.com/imperiumao/gm-panel/util/common"
)

// Action verbs of the events wire format. The lines are Spanish because the
// receiving side is the game's Spanish-language events feed; this is a wire
// format, not UI copy.
const (
	ActionCreated  = "creó el usuario"
	ActionUpdated  = "editó al usuario"
	ActionDeleted  = "eliminó al usuario"
	ActionRestored = "restauró al usuario"
	ActionBanned   = "bloqueó al usuario"
	ActionUnbanned = "desbloqueó al usuario"
)

// EventsService delivers audit log lines for staff actions to the external
// events API. Delivery is best effort: failures are logged and swallowed,
// never retried, and must never affect the calling operation.
type EventsService struct{}

// ShouldAudit reports whether actions by the given actor are reported to the
// events API. The system account is the single exemption.
func (s *EventsService) ShouldAudit(actor string) bool {
	return actor != config.GetSystemAccount()
}

// ReportAction builds the events feed line for an action on a user and
// delivers it. Safe to call from a goroutine; it never returns an error.
func (s *EventsService) ReportAction(actor, action, username string) {
	if !s.ShouldAudit(actor) {
		return
	}

	log := fmt.Sprintf("<b>GENERADOR DE EVENTOS:</b> %s %s '%s'.", actor, action, username)
	if err := s.deliver(actor, log); err != nil {
		logger.Warning("events delivery failed:", err)
	}
}

// deliver issues the GET against the events endpoint with the shared key,
// the actor's username and the log line as query parameters. The response
// body is discarded.
func (s *EventsService) deliver(actor, log string) error {
	params := url.Values{}
	params.Set("ek", config.GetEventsKey())
	params.Set("nick", actor)
	params.Set("log", log)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(config.GetEventsEndpoint() + "?" + params.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return common.NewErrorf("events endpoint returned status code %d", resp.StatusCode)
	}
	return nil
}

// CheckEndpoint probes the events endpoint for reachability. Used by the
// background health job only; request paths never depend on it.
func (s *EventsService) CheckEndpoint() error {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(config.GetEventsEndpoint())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return common.NewErrorf("events endpoint returned status code %d", resp.StatusCode)
	}
	return nil
}
