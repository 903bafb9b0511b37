package app

import (
	"net/http"

	"github.com/cinewave/booking-edge/api"
	"github.com/cinewave/booking-edge/internal/booking"
	"github.com/cinewave/booking-edge/internal/domain"
)

// GetSessionHandler returns the read view of the caller's booking session.
func (app *application) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	app.writeSessionResponse(w, r, app.sessionFlow(r))
}

func (app *application) writeSessionResponse(w http.ResponseWriter, r *http.Request, flow *booking.Flow) {
	resp := toSessionResponse(flow.Session().Snapshot(), flow.State())

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSessionResponse(snap booking.State, state booking.FlowState) api.SessionResponse {
	return api.SessionResponse{
		Movie:         toMovieResponse(snap.Movie),
		Theatre:       toTheatreResponse(snap.Theatre),
		Screen:        toScreenResponse(snap.Screen),
		Show:          toShowResponse(snap.Show),
		SelectedSeats: toApiSeats(snap.SelectedSeats),
		TotalPrice:    booking.TotalPrice(snap.SelectedSeats),
		BookingId:     snap.BookingID,
		Loading:       snap.Loading,
		Error:         snap.Error,
		FlowState:     string(state),
	}
}

func toMovieResponse(movie *domain.Movie) *api.MovieResponse {
	if movie == nil {
		return nil
	}

	resp := &api.MovieResponse{
		Id:           movie.ID,
		Title:        movie.Title,
		Description:  movie.Description,
		DurationMins: movie.DurationMins,
		Language:     movie.Language,
	}

	if movie.Certificate != nil {
		certificate := api.Certificate(*movie.Certificate)
		resp.Certificate = &certificate
	}

	return resp
}

func toTheatreResponse(theatre *domain.Theatre) *api.TheatreResponse {
	if theatre == nil {
		return nil
	}

	return &api.TheatreResponse{
		Id:      theatre.ID,
		Name:    theatre.Name,
		City:    theatre.City,
		Address: theatre.Address,
		Screens: toScreenResponses(theatre.Screens),
	}
}

func toScreenResponse(screen *domain.Screen) *api.ScreenResponse {
	if screen == nil {
		return nil
	}

	return &api.ScreenResponse{
		Id:         screen.ID,
		Name:       screen.Name,
		TotalSeats: screen.TotalSeats,
		TheatreId:  screen.TheatreID,
	}
}

func toShowResponse(show *domain.Show) *api.ShowResponse {
	if show == nil {
		return nil
	}

	return &api.ShowResponse{
		Id:        show.ID,
		MovieId:   show.MovieID,
		ScreenId:  show.ScreenID,
		StartTime: show.StartTime,
		EndTime:   show.EndTime,
		BasePrice: show.BasePrice,
	}
}
