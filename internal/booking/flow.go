package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cinewave/booking-edge/internal/domain"
)

// FlowState is the booking flow's position between seat selection and a
// finished (or failed) booking.
type FlowState string

const (
	StateSelecting  FlowState = "SELECTING"
	StateLocking    FlowState = "LOCKING"
	StateLocked     FlowState = "LOCKED"
	StateConfirming FlowState = "CONFIRMING"
	StateConfirmed  FlowState = "CONFIRMED"
	StateFailed     FlowState = "FAILED"
)

// Gateway is the slice of the backend the flow controller drives.
type Gateway interface {
	domain.ShowGateway
	domain.BookingGateway
}

// DefaultResetDwell is how long a confirmed booking stays on display before
// the session is reset for the next one.
const DefaultResetDwell = 5 * time.Second

// Flow orchestrates the two-phase commit against the backend: lock the
// chosen seats, then confirm the booking. The two calls are issued
// back-to-back with no user-visible pause; the split exists because the
// backend models booking as two calls, not to offer a cancel window.
type Flow struct {
	session *Session
	gateway Gateway
	logger  *slog.Logger

	mu         sync.Mutex
	state      FlowState
	inFlight   bool
	generation uint64
	resetTimer *time.Timer
	resetDwell time.Duration
}

func NewFlow(session *Session, gateway Gateway, logger *slog.Logger, resetDwell time.Duration) *Flow {
	if resetDwell <= 0 {
		resetDwell = DefaultResetDwell
	}

	return &Flow{
		session:    session,
		gateway:    gateway,
		logger:     logger,
		state:      StateSelecting,
		resetDwell: resetDwell,
	}
}

func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *Flow) Session() *Session {
	return f.session
}

// Confirm runs the lock→confirm transaction for the current selection.
// Preconditions (a non-empty selection for the session's current show, a
// fresh layout, no attempt already in flight) fail without touching the
// session, so the caller can simply surface the error and the user may
// retry. After a successful lock the confirm call is issued immediately; if
// it fails the booking id is kept so the attempt can be resumed without
// re-locking, and lock release is left to the backend's own expiry.
func (f *Flow) Confirm(ctx context.Context, showID int) (*domain.Booking, error) {
	snap := f.session.Snapshot()

	if len(snap.SelectedSeats) == 0 {
		return nil, domain.ErrNoSeatsSelected
	}
	if snap.Show == nil || snap.Show.ID != showID {
		return nil, domain.ErrShowMismatch
	}
	if f.session.LayoutStale() {
		return nil, domain.ErrStaleLayout
	}

	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, domain.ErrBookingInFlight
	}
	f.inFlight = true
	f.state = StateLocking
	gen := f.generation
	f.mu.Unlock()

	f.session.SetLoading(true)
	f.session.SetError(nil)

	seatIDs := make([]int, len(snap.SelectedSeats))
	for i, seat := range snap.SelectedSeats {
		seatIDs[i] = seat.ID
	}

	bookingID, err := f.gateway.LockSeats(ctx, showID, seatIDs)
	if err != nil {
		f.logger.Warn("seat lock failed", "show_id", showID, "seat_ids", seatIDs, "error", err)

		if domain.KindOf(err) == domain.KindConflict && f.current(gen) {
			// The seats moved under us; the cached layout can no longer be
			// trusted for another attempt.
			f.session.MarkLayoutStale()
		}

		f.fail(gen, err)

		return nil, err
	}

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		f.logger.Warn("discarding seat lock response for a reset session", "booking_id", bookingID)
		return nil, domain.ErrSessionReset
	}
	f.state = StateLocked
	f.mu.Unlock()

	f.session.SetBookingID(&bookingID)

	return f.issueConfirm(ctx, gen, bookingID)
}

// ResumeConfirm retries the confirm call for a booking whose lock succeeded
// but whose confirm failed, using the retained booking id without re-locking.
func (f *Flow) ResumeConfirm(ctx context.Context) (*domain.Booking, error) {
	snap := f.session.Snapshot()
	if snap.BookingID == nil {
		return nil, domain.ErrNoBookingToResume
	}

	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, domain.ErrBookingInFlight
	}
	f.inFlight = true
	gen := f.generation
	f.mu.Unlock()

	f.session.SetLoading(true)
	f.session.SetError(nil)

	return f.issueConfirm(ctx, gen, *snap.BookingID)
}

func (f *Flow) issueConfirm(ctx context.Context, gen uint64, bookingID int) (*domain.Booking, error) {
	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return nil, domain.ErrSessionReset
	}
	f.state = StateConfirming
	f.mu.Unlock()

	booking, err := f.gateway.ConfirmBooking(ctx, bookingID)
	if err != nil {
		f.logger.Warn("booking confirm failed", "booking_id", bookingID, "error", err)
		// The booking id stays set: the backend owns releasing the lock, and
		// a later ResumeConfirm may still finish this booking.
		f.fail(gen, err)

		return nil, err
	}

	// The session may have been reset while the backend was answering; a
	// late result must not resurrect the finished attempt.
	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		f.logger.Warn("discarding confirm response for a reset session", "booking_id", bookingID)
		return nil, domain.ErrSessionReset
	}
	f.state = StateConfirmed
	f.inFlight = false
	f.mu.Unlock()

	f.session.SetLoading(false)

	f.logger.Info("booking confirmed", "booking_id", booking.ID, "show_id", booking.ShowID)

	return booking, nil
}

// current reports whether gen still identifies the live attempt, i.e. the
// flow has not been reset since the attempt started.
func (f *Flow) current(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return gen == f.generation
}

func (f *Flow) fail(gen uint64, err error) {
	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return
	}
	f.state = StateFailed
	f.inFlight = false
	f.mu.Unlock()

	message := err.Error()
	f.session.SetError(&message)
	f.session.SetLoading(false)
}

// LoadSeatLayout fetches the seat layout for the session's current show.
// A response that arrives after the user has moved to a different show is
// discarded via the session's fetch token. A successful load re-enters
// Selecting after a failed attempt.
func (f *Flow) LoadSeatLayout(ctx context.Context) (*domain.SeatLayout, error) {
	token, showID, err := f.session.BeginLayoutFetch()
	if err != nil {
		return nil, err
	}

	f.session.SetLoading(true)
	f.session.SetError(nil)

	layout, err := f.gateway.GetShowSeatLayout(ctx, showID)
	if err != nil {
		message := err.Error()
		f.session.SetError(&message)
		f.session.SetLoading(false)

		return nil, err
	}

	f.session.SetLoading(false)

	if !f.session.ApplyLayout(token, layout) {
		return nil, domain.ErrStaleLayout
	}

	f.mu.Lock()
	if f.state == StateFailed {
		f.state = StateSelecting
	}
	f.mu.Unlock()

	return layout, nil
}

// ScheduleReset arms the post-confirmation reset: once the confirmation view
// has been displayed for the dwell time the session is wiped for the next
// booking. The returned cancel must run if the confirmation view is torn
// down early, so a dangling timer cannot reset a session a later view is
// using. Cancel is idempotent.
func (f *Flow) ScheduleReset() (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resetTimer != nil {
		f.resetTimer.Stop()
	}

	timer := time.AfterFunc(f.resetDwell, f.Reset)
	f.resetTimer = timer

	return func() { timer.Stop() }
}

// Reset cancels any pending reset timer and returns the flow to a clean
// Selecting state with an empty session. Bumping the generation orphans any
// attempt still talking to the backend, so its late result is discarded
// instead of mutating the session the user restarted.
func (f *Flow) Reset() {
	f.mu.Lock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.state = StateSelecting
	f.inFlight = false
	f.generation++
	f.mu.Unlock()

	f.session.ResetBooking()
}
