package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS middleware decides who may talk to us
	CheckOrigin: func(r *http.Request) bool { return true },
}

var keepaliveInterval = 30 * time.Second

// Events streams registry events over a websocket: first everything after
// ?cursor=, then new events as they happen.
func (d *Dashboard) Events(w http.ResponseWriter, r *http.Request) {
	l := d.logger("Events").With("conn", uuid.NewString())

	var cursor int64
	if c := r.URL.Query().Get("cursor"); c != "" {
		var err error
		cursor, err = strconv.ParseInt(c, 10, 64)
		if err != nil {
			l.Error("invalid cursor", "cursor", c, "error", err)
			writeError(w, fmt.Errorf("invalid cursor %q", c), http.StatusBadRequest)
			return
		}
	}

	// subscribe before the backfill so nothing recorded in between is lost
	ch := d.n.Subscribe()
	defer d.n.Unsubscribe(ch)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	l.Info("upgraded http to wss")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				l.Debug("read loop ended", "err", err)
				cancel()
				return
			}
		}
	}()

	l.Info("going through backfill", "cursor", cursor)
	if err := d.streamEvents(conn, &cursor); err != nil {
		l.Error("failed to backfill", "err", err)
		return
	}

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Info("stopping stream: client closed connection")
			return
		case seq, ok := <-ch:
			if !ok {
				return
			}
			if seq <= cursor {
				// already sent during backfill
				continue
			}
			l.Debug("going through live data", "cursor", cursor, "seq", seq)
			if err := d.streamEvents(conn, &cursor); err != nil {
				l.Error("failed to stream", "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second)); err != nil {
				l.Error("failed to write control", "err", err)
				return
			}
		}
	}
}

func (d *Dashboard) streamEvents(conn *websocket.Conn, cursor *int64) error {
	for {
		evs := d.r.Events(*cursor)
		if len(evs) == 0 {
			return nil
		}

		for _, ev := range evs {
			if err := conn.WriteJSON(ev); err != nil {
				return err
			}
			*cursor = ev.Seq
		}
	}
}
