package app

import (
	"net/http"

	"github.com/cinewave/booking-edge/api"
	"github.com/cinewave/booking-edge/internal/domain"
)

// ListTheatresHandler fetches the theatre catalog and caches it on the
// session, so a later theatre selection can be resolved against exactly the
// list the user was shown.
func (app *application) ListTheatresHandler(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFlow(r).Session()

	session.SetLoading(true)
	session.SetError(nil)

	theatres, err := app.gateway.GetAllTheatres(r.Context())
	if err != nil {
		message := err.Error()
		session.SetError(&message)
		session.SetLoading(false)
		app.gatewayErrorResponse(w, r, err)
		return
	}

	session.SetLoading(false)
	session.SetTheatreCatalog(theatres)

	resp := api.TheatreListResponse{
		Theatres: toTheatreResponses(theatres),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ListScreensHandler(w http.ResponseWriter, r *http.Request) {
	theatreID, err := idParam(r, "theatreId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session := app.sessionFlow(r).Session()

	session.SetLoading(true)
	session.SetError(nil)

	screens, err := app.gateway.GetScreensByTheatre(r.Context(), theatreID)
	if err != nil {
		message := err.Error()
		session.SetError(&message)
		session.SetLoading(false)
		app.gatewayErrorResponse(w, r, err)
		return
	}

	session.SetLoading(false)
	session.SetScreenCatalog(screens)

	resp := api.ScreenListResponse{
		Screens: toScreenResponses(screens),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) SelectTheatreHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SelectTheatreRequest

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

	err = flow.Session().SelectTheatre(input.TheatreId)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.writeSessionResponse(w, r, flow)
}

func (app *application) SelectScreenHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SelectScreenRequest

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

	err = flow.Session().SelectScreen(input.ScreenId)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.writeSessionResponse(w, r, flow)
}

func toTheatreResponses(theatres []domain.Theatre) []api.TheatreResponse {
	resp := make([]api.TheatreResponse, len(theatres))

	for i, t := range theatres {
		resp[i] = *toTheatreResponse(&t)
	}

	return resp
}

func toScreenResponses(screens []domain.Screen) []api.ScreenResponse {
	resp := make([]api.ScreenResponse, len(screens))

	for i, s := range screens {
		resp[i] = *toScreenResponse(&s)
	}

	return resp
}
