package dashboard

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"qythex.dev/core/registry"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) registry.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev registry.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestEventsLive(t *testing.T) {
	srv, _ := setup(t)
	conn := dial(t, srv.URL+"/events")

	resp, _ := do(t, http.MethodPost, srv.URL+prefix+"/workflows", `{"name":"X","repo":"r","trigger":"push"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ev := readEvent(t, conn)
	assert.Equal(t, int64(1), ev.Seq)
	assert.Equal(t, registry.EventWorkflowCreated, ev.Kind)
	assert.Equal(t, 5, ev.Workflow.Id)
	assert.Equal(t, registry.StatusCreated, ev.Workflow.Status)

	resp, _ = do(t, http.MethodPost, srv.URL+prefix+"/workflows/5/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ev = readEvent(t, conn)
	assert.Equal(t, int64(2), ev.Seq)
	assert.Equal(t, registry.EventWorkflowRun, ev.Kind)
	assert.Equal(t, registry.StatusRunning, ev.Workflow.Status)
}

func TestEventsBackfill(t *testing.T) {
	srv, reg := setup(t)

	for _, id := range []int{1, 2, 3} {
		_, err := reg.RunWorkflow(id)
		require.NoError(t, err)
	}

	conn := dial(t, srv.URL+"/events?cursor=1")

	first := readEvent(t, conn)
	assert.Equal(t, int64(2), first.Seq)
	assert.Equal(t, 2, first.Workflow.Id)

	second := readEvent(t, conn)
	assert.Equal(t, int64(3), second.Seq)
	assert.Equal(t, 3, second.Workflow.Id)
}

func TestEventsInvalidCursor(t *testing.T) {
	srv, _ := setup(t)

	resp, b := do(t, http.MethodGet, srv.URL+"/events?cursor=soon", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	e := decode[any](t, b)
	assert.False(t, e.Success)
	assert.Equal(t, `invalid cursor "soon"`, e.Error)
}

func TestEventsUnsubscribesOnClose(t *testing.T) {
	d, _ := newTestDashboard(t)
	srv := httptestServer(t, d)

	conn := dial(t, srv.URL+"/events")
	assert.Eventually(t, func() bool { return d.n.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return d.n.Subscribers() == 0 }, 5*time.Second, 10*time.Millisecond)
}
