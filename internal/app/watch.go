package app

import (
	"net/http"

	"github.com/cinewave/booking-edge/internal/booking"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WatchSessionHandler is the subscription half of the presentation boundary:
// it upgrades to a WebSocket and pushes a session snapshot on every store
// mutation, so a view re-renders without polling. The subscription is torn
// down when the socket closes.
func (app *application) WatchSessionHandler(w http.ResponseWriter, r *http.Request) {
	flow := app.sessionFlow(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}
	defer conn.Close()

	// The listener runs on whichever goroutine mutates the session, so it
	// only enqueues; this goroutine owns all writes to the socket. A slow
	// consumer loses intermediate snapshots, never the latest one.
	updates := make(chan booking.State, 16)

	unsubscribe := flow.Session().Subscribe(func(snap booking.State) {
		select {
		case updates <- snap:
		default:
			app.logger.Warn("session watcher is slow, dropping snapshot")
		}
	})
	defer unsubscribe()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	snap := flow.Session().Snapshot()

	err = conn.WriteJSON(toSessionResponse(snap, flow.State()))
	if err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case snap := <-updates:
			err = conn.WriteJSON(toSessionResponse(snap, flow.State()))
			if err != nil {
				return
			}
		}
	}
}
