// Package booking holds the per-browser booking session: the session store,
// the seat selection engine and the lock→confirm flow controller.
package booking

import (
	"log/slog"
	"sync"

	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/google/uuid"
)

// State is an immutable snapshot of a booking session. Readers never observe
// a partially-updated session: every snapshot is taken under the session
// lock after a mutation completes.
type State struct {
	Movie         *domain.Movie
	Theatre       *domain.Theatre
	Screen        *domain.Screen
	Show          *domain.Show
	SelectedSeats []domain.Seat
	BookingID     *int
	Loading       bool
	Error         *string
}

// Listener receives a session snapshot after every mutation. Listeners are
// invoked synchronously, in registration order, outside the session lock.
type Listener func(State)

// Session is the mutable aggregate root of one in-progress booking. It has a
// single writer role (the setter methods) and any number of readers; the
// mutex re-establishes the atomic-update guarantee the browser original got
// for free from single-threaded execution.
type Session struct {
	logger *slog.Logger

	mu    sync.Mutex
	state State

	// Catalogs as last fetched for this session. Selections are resolved
	// against them so the membership invariants hold by construction.
	theatres []domain.Theatre
	screens  []domain.Screen
	shows    []domain.Show

	layout      *domain.SeatLayout
	layoutToken string
	layoutStale bool

	listeners  map[int]Listener
	nextListID int
}

func NewSession(logger *slog.Logger) *Session {
	return &Session{
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListID
	s.nextListID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	snap := s.state
	snap.SelectedSeats = append([]domain.Seat(nil), s.state.SelectedSeats...)

	return snap
}

// update runs mutate under the lock, then notifies every listener with the
// resulting snapshot. Notification happens outside the lock so a listener
// may call back into the session.
func (s *Session) update(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()

	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Session) SetMovie(movie *domain.Movie) {
	s.update(func() {
		s.state.Movie = movie
	})
}

// SetTheatre replaces the selected theatre. Everything downstream of the
// theatre (screen, show, selected seats, their catalogs and the layout) is
// cleared so a stale choice can never be attributed to the new theatre.
func (s *Session) SetTheatre(theatre *domain.Theatre) {
	s.update(func() {
		s.state.Theatre = theatre
		s.clearScreenLocked()
	})
}

func (s *Session) SetScreen(screen *domain.Screen) {
	s.update(func() {
		s.state.Screen = screen
		s.clearShowLocked()
	})
}

func (s *Session) SetShow(show *domain.Show) {
	s.update(func() {
		s.state.Show = show
		s.clearSeatsLocked()
	})
}

func (s *Session) SetSelectedSeats(seats []domain.Seat) {
	s.update(func() {
		s.state.SelectedSeats = append([]domain.Seat(nil), seats...)
	})
}

func (s *Session) SetBookingID(id *int) {
	s.update(func() {
		s.state.BookingID = id
	})
}

func (s *Session) SetLoading(loading bool) {
	s.update(func() {
		s.state.Loading = loading
	})
}

func (s *Session) SetError(message *string) {
	s.update(func() {
		s.state.Error = message
	})
}

// ResetBooking restores every field to its empty default in one atomic step.
// Calling it on an already-empty session is a no-op apart from notification.
func (s *Session) ResetBooking() {
	s.update(func() {
		s.state = State{}
		s.theatres = nil
		s.clearScreenLocked()
	})
}

func (s *Session) clearScreenLocked() {
	s.state.Screen = nil
	s.screens = nil
	s.clearShowLocked()
}

func (s *Session) clearShowLocked() {
	s.state.Show = nil
	s.shows = nil
	s.clearSeatsLocked()
}

func (s *Session) clearSeatsLocked() {
	s.state.SelectedSeats = nil
	s.layout = nil
	s.layoutToken = uuid.NewString()
	s.layoutStale = false
}

// SetTheatreCatalog records the theatre list last fetched for this session.
func (s *Session) SetTheatreCatalog(theatres []domain.Theatre) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theatres = theatres
}

func (s *Session) SetScreenCatalog(screens []domain.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screens = screens
}

func (s *Session) SetShowCatalog(shows []domain.Show) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shows = shows
}

// SelectTheatre resolves the id against the fetched theatre catalog and
// makes it the selected theatre.
func (s *Session) SelectTheatre(theatreID int) error {
	s.mu.Lock()

	var theatre *domain.Theatre
	for i := range s.theatres {
		if s.theatres[i].ID == theatreID {
			theatre = &s.theatres[i]
			break
		}
	}
	s.mu.Unlock()

	if theatre == nil {
		return domain.ErrUnknownTheatre
	}

	s.SetTheatre(theatre)

	return nil
}

// SelectScreen resolves the id against the fetched screen catalog; the
// screen must belong to the selected theatre.
func (s *Session) SelectScreen(screenID int) error {
	s.mu.Lock()

	var screen *domain.Screen
	for i := range s.screens {
		if s.screens[i].ID == screenID {
			screen = &s.screens[i]
			break
		}
	}
	theatre := s.state.Theatre
	s.mu.Unlock()

	if screen == nil || theatre == nil || screen.TheatreID != theatre.ID {
		return domain.ErrUnknownScreen
	}

	s.SetScreen(screen)

	return nil
}

// SelectShow resolves the id against the fetched show catalog; the show must
// reference both the selected movie and the selected screen.
func (s *Session) SelectShow(showID int) error {
	s.mu.Lock()

	var show *domain.Show
	for i := range s.shows {
		if s.shows[i].ID == showID {
			show = &s.shows[i]
			break
		}
	}
	movie := s.state.Movie
	screen := s.state.Screen
	s.mu.Unlock()

	if show == nil || movie == nil || screen == nil ||
		show.MovieID != movie.ID || show.ScreenID != screen.ID {
		return domain.ErrUnknownShow
	}

	s.SetShow(show)

	return nil
}

// BeginLayoutFetch returns the token a layout response must carry to be
// applied, together with the show to fetch for. The token changes whenever
// the show changes, so a response that raced a navigation is discarded.
func (s *Session) BeginLayoutFetch() (token string, showID int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Show == nil {
		return "", 0, domain.ErrNoShowSelected
	}

	return s.layoutToken, s.state.Show.ID, nil
}

// ApplyLayout installs a fetched layout if its token is still current.
// It reports whether the layout was applied.
func (s *Session) ApplyLayout(token string, layout *domain.SeatLayout) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.layoutToken {
		s.logger.Warn("discarding stale seat layout response",
			"layout_show_id", layout.ShowID)
		return false
	}

	s.layout = layout
	s.layoutStale = false

	return true
}

func (s *Session) Layout() *domain.SeatLayout {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.layout
}

// MarkLayoutStale flags the cached layout as untrustworthy (a lock conflict
// means seat statuses moved under us); it must be re-fetched before another
// booking attempt.
func (s *Session) MarkLayoutStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layoutStale = true
}

func (s *Session) LayoutStale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.layoutStale
}

// ToggleSeat flips membership of the given show-seat in the selection. The
// seat must come from the layout last fetched for the current show; unknown
// ids are logged and ignored rather than allowed to corrupt the selection.
func (s *Session) ToggleSeat(seatID int) {
	s.mu.Lock()
	layout := s.layout
	s.mu.Unlock()

	if layout == nil {
		s.logger.Warn("seat toggle ignored, no seat layout fetched", "seat_id", seatID)
		return
	}

	seat, ok := layout.Seat(seatID)
	if !ok {
		s.logger.Warn("seat toggle ignored, seat not in fetched layout", "seat_id", seatID)
		return
	}

	s.update(func() {
		s.state.SelectedSeats = Toggle(seat, s.state.SelectedSeats)
	})
}
