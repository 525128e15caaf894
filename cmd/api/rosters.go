package main

import (
	"errors"
	"io"
	"net/http"

	"CourtsideApi/internal/data"
	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertRoster(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string               `json:"name"`
		Color   string               `json:"color"`
		Players []engine.RosterEntry `json:"players"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	template := &data.RosterTemplate{
		Name:    input.Name,
		Color:   input.Color,
		Players: input.Players,
	}

	v := validator.New()
	if data.ValidateRosterTemplate(v, template); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)
	err = app.models.Rosters.Insert(user.ID, template)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"roster": template}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllRosters(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	templates, err := app.models.Rosters.GetAll(user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"rosters": templates}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetRoster(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	id := chi.URLParam(r, "id")

	template, err := app.models.Rosters.Get(user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"roster": template}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteRoster(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	id := chi.URLParam(r, "id")

	err := app.models.Rosters.Delete(user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "roster successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ImportRosters takes a raw JSON array of rosters. The whole file is either
// accepted or rejected; a bad file never clobbers saved templates.
func (app *application) ImportRosters(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)

	templates, err := app.models.Rosters.ImportAll(user.ID, payload)
	if err != nil {
		var modelErr data.ModelValidationErr
		switch {
		case errors.As(err, &modelErr):
			app.failedValidationResponse(w, r, modelErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"rosters": templates}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
