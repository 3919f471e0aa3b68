package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAudit(t *testing.T) {
	svc := EventsService{}

	assert.True(t, svc.ShouldAudit("root"))
	assert.False(t, svc.ShouldAudit("admin"))

	t.Setenv("GMP_SYSTEM_ACCOUNT", "system")
	assert.True(t, svc.ShouldAudit("admin"))
	assert.False(t, svc.ShouldAudit("system"))
}

func TestReportActionDeliversQuery(t *testing.T) {
	var calls atomic.Int32
	var gotEk, gotNick, gotLog string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		gotEk = q.Get("ek")
		gotNick = q.Get("nick")
		gotLog = q.Get("log")
	}))
	defer ts.Close()

	t.Setenv("GMP_EVENTS_ENDPOINT", ts.URL)
	t.Setenv("GMP_EVENTS_KEY", "sharedsecret")

	svc := EventsService{}
	svc.ReportAction("root", ActionCreated, "newguy")

	require.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "sharedsecret", gotEk)
	assert.Equal(t, "root", gotNick)
	assert.True(t, strings.Contains(gotLog, "creó el usuario 'newguy'"))
	assert.True(t, strings.HasPrefix(gotLog, "<b>GENERADOR DE EVENTOS:</b>"))
}

func TestReportActionSkipsSystemAccount(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	t.Setenv("GMP_EVENTS_ENDPOINT", ts.URL)

	svc := EventsService{}
	svc.ReportAction("admin", ActionDeleted, "victim")

	assert.Equal(t, int32(0), calls.Load())
}

func TestReportActionSwallowsFailures(t *testing.T) {
	// a closed server guarantees a transport failure
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	t.Setenv("GMP_EVENTS_ENDPOINT", ts.URL)

	svc := EventsService{}
	assert.NotPanics(t, func() {
		svc.ReportAction("root", ActionBanned, "someone")
	})
}

func TestReportActionSwallowsBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	t.Setenv("GMP_EVENTS_ENDPOINT", ts.URL)

	svc := EventsService{}
	assert.NotPanics(t, func() {
		svc.ReportAction("root", ActionRestored, "someone")
	})
}
