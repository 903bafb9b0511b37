package app

import (
	"net/http"
)

// GetMovieHandler fetches the movie from the backend and makes it the
// session's selected movie, the entry point of the booking wizard.
func (app *application) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := idParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session := app.sessionFlow(r).Session()

	session.SetLoading(true)
	session.SetError(nil)

	movie, err := app.gateway.GetMovie(r.Context(), movieID)
	if err != nil {
		message := err.Error()
		session.SetError(&message)
		session.SetLoading(false)
		app.gatewayErrorResponse(w, r, err)
		return
	}

	session.SetLoading(false)
	session.SetMovie(movie)

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
