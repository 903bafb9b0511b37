package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cinewave/booking-edge/api"
	"github.com/cinewave/booking-edge/internal/domain"
)

// ListShowsHandler fetches the shows for the session's selected movie and
// screen and caches them for a later show selection.
func (app *application) ListShowsHandler(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFlow(r).Session()
	snap := session.Snapshot()

	if snap.Movie == nil || snap.Screen == nil {
		app.badRequestResponse(w, r, fmt.Errorf("select a movie and a screen before listing shows"))
		return
	}

	session.SetLoading(true)
	session.SetError(nil)

	shows, err := app.gateway.GetShowsByMovieAndScreen(r.Context(), snap.Movie.ID, snap.Screen.ID)
	if err != nil {
		message := err.Error()
		session.SetError(&message)
		session.SetLoading(false)
		app.gatewayErrorResponse(w, r, err)
		return
	}

	session.SetLoading(false)
	session.SetShowCatalog(shows)

	resp := api.ShowListResponse{
		Shows: toShowResponses(shows),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) SelectShowHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SelectShowRequest

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

	err = flow.Session().SelectShow(input.ShowId)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.writeSessionResponse(w, r, flow)
}

// GetSeatLayoutHandler fetches the authoritative seat map for the session's
// current show. A response racing a show change is discarded by the flow.
func (app *application) GetSeatLayoutHandler(w http.ResponseWriter, r *http.Request) {
	flow := app.sessionFlow(r)

	layout, err := flow.LoadSeatLayout(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoShowSelected):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrStaleLayout):
			app.editConflictResponse(w, r, err)
		default:
			app.gatewayErrorResponse(w, r, err)
		}

		return
	}

	snap := flow.Session().Snapshot()
	resp := toSeatMapResponse(layout, snap.SelectedSeats)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowResponses(shows []domain.Show) []api.ShowResponse {
	resp := make([]api.ShowResponse, len(shows))

	for i, s := range shows {
		resp[i] = *toShowResponse(&s)
	}

	return resp
}

func toSeatMapResponse(layout *domain.SeatLayout, selected []domain.Seat) api.SeatMapResponse {
	selectedIds := make(map[int]bool, len(selected))
	for _, seat := range selected {
		selectedIds[seat.ID] = true
	}

	rows := make([]api.SeatRow, len(layout.Layout))

	for i, row := range layout.Layout {
		seats := make([]api.Seat, len(row.Seats))

		for j, seat := range row.Seats {
			seats[j] = toApiSeat(seat, selectedIds[seat.ID])
		}

		rows[i] = api.SeatRow{
			Row:   row.Row,
			Type:  api.SeatType(row.SeatType),
			Seats: seats,
		}
	}

	return api.SeatMapResponse{
		ShowId:   layout.ShowID,
		SeatRows: rows,
	}
}

func toApiSeat(seat domain.Seat, selected bool) api.Seat {
	return api.Seat{
		Id:         seat.ID,
		SeatNumber: seat.SeatNumber,
		Type:       api.SeatType(seat.SeatType),
		Status:     api.SeatStatus(seat.Status),
		Price:      seat.Price,
		Selected:   selected,
	}
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	apiSeats := make([]api.Seat, len(seats))

	for i, seat := range seats {
		apiSeats[i] = toApiSeat(seat, true)
	}

	return apiSeats
}
