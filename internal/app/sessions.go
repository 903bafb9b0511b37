package app

import (
	"net/http"
	"sync"

	"github.com/cinewave/booking-edge/internal/booking"
)

// sessionRegistry maps browser session tokens to their booking flow. Each
// browser session gets exactly one flow (and session store) with no
// cross-session visibility; entries die with the process, matching the
// ephemeral session model.
type sessionRegistry struct {
	mu    sync.Mutex
	flows map[string]*booking.Flow
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		flows: make(map[string]*booking.Flow),
	}
}

func (r *sessionRegistry) flow(token string, create func() *booking.Flow) *booking.Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[token]
	if !ok {
		flow = create()
		r.flows[token] = flow
	}

	return flow
}

// sessionFlow returns the booking flow owned by the request's browser
// session, creating it on first use.
func (app *application) sessionFlow(r *http.Request) *booking.Flow {
	token := app.sessionManager.Token(r.Context())

	return app.sessions.flow(token, func() *booking.Flow {
		session := booking.NewSession(app.logger)

		return booking.NewFlow(session, app.gateway, app.logger, app.config.ResetDwell)
	})
}
