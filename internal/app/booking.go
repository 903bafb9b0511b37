package app

import (
	"errors"
	"net/http"

	"github.com/cinewave/booking-edge/api"
	"github.com/cinewave/booking-edge/internal/domain"
)

// ToggleSeatHandler flips the selection of one show-seat. Clicks on seats
// that are not selectable (or not in the fetched layout) are silently
// ignored, matching normal seat-map affordance.
func (app *application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	seatID, err := idParam(r, "seatId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	flow := app.sessionFlow(r)
	flow.Session().ToggleSeat(seatID)

	app.writeSessionResponse(w, r, flow)
}

// ConfirmBookingHandler runs the lock→confirm transaction for the current
// selection and, on success, arms the post-confirmation session reset.
func (app *application) ConfirmBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ConfirmBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	flow := app.sessionFlow(r)

	booking, err := flow.Confirm(r.Context(), input.ShowId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSeatsSelected), errors.Is(err, domain.ErrShowMismatch):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrBookingInFlight), errors.Is(err, domain.ErrStaleLayout),
			errors.Is(err, domain.ErrSessionReset):
			app.editConflictResponse(w, r, err)
		default:
			app.gatewayErrorResponse(w, r, err)
		}

		return
	}

	flow.ScheduleReset()

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ResumeConfirmHandler retries the confirm call for a booking whose lock
// succeeded but whose confirm failed, without re-locking the seats.
func (app *application) ResumeConfirmHandler(w http.ResponseWriter, r *http.Request) {
	flow := app.sessionFlow(r)

	booking, err := flow.ResumeConfirm(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoBookingToResume):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrBookingInFlight), errors.Is(err, domain.ErrSessionReset):
			app.editConflictResponse(w, r, err)
		default:
			app.gatewayErrorResponse(w, r, err)
		}

		return
	}

	flow.ScheduleReset()

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ResetSessionHandler is the explicit cancel/navigate-away reset. It also
// cancels a pending post-confirmation reset timer, so tearing the
// confirmation view down early never fires a dangling reset later.
func (app *application) ResetSessionHandler(w http.ResponseWriter, r *http.Request) {
	app.sessionFlow(r).Reset()

	w.WriteHeader(http.StatusNoContent)
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          booking.ID,
		Status:      api.BookingStatus(booking.Status),
		ShowId:      booking.ShowID,
		TotalAmount: booking.TotalAmount,
	}
}
