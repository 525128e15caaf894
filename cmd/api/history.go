package main

import (
	"errors"
	"net/http"
	"slices"

	"CourtsideApi/internal/data"
	"CourtsideApi/internal/summary"
	"CourtsideApi/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (app *application) GetAllHistory(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	v := validator.New()
	qs := r.URL.Query()
	sort := app.readString(qs, "sort", "newest")
	limit := app.readInt(qs, "limit", 0, v)

	v.Check(validator.PermittedValue(sort, "newest", "oldest"), "sort",
		`must be "newest" or "oldest"`)
	v.Check(limit >= 0, "limit", "must not be negative")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	records, err := app.models.History.GetAll(user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// records arrive newest first
	if sort == "oldest" {
		slices.Reverse(records)
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"history": records}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	record, err := app.models.History.Get(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"record": record}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetHistoryReport renders the stored record as plain text, ready to paste
// or download.
func (app *application) GetHistoryReport(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	record, err := app.models.History.Get(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(record.Report()))
	if err != nil {
		app.logError(r, err)
	}
}

func (app *application) SummarizeHistory(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Tone string `json:"tone"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tone := summary.Tone(input.Tone)
	v := validator.New()
	v.Check(summary.ValidTone(tone), "tone",
		`must be one of "ENERGETIC", "OFFICIAL" or "ANALYTICAL"`)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)

	record, err := app.models.History.Get(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	text := app.summarizer.Generate(r.Context(), summary.Input{
		Opponent:      record.Name,
		Notes:         record.Notes,
		PlayerMinutes: record.PlayerMinutes(),
		Injured:       record.InjuredNames(),
		Tone:          tone,
	})

	err = app.writeJSON(w, http.StatusOK, envelope{"summary": text}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) EmailHistoryReport(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateEmail(v, input.Email); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)

	record, err := app.models.History.Get(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.backgroundTask(func() {
		mailData := map[string]any{
			"gameName": record.Name,
			"report":   record.Report(),
		}

		err := app.mailer.Send(input.Email, "game_report.tmpl", mailData)
		if err != nil {
			app.logger.PrintError(err, map[string]string{"record_id": record.ID})
		}
	})

	err = app.writeJSON(w, http.StatusAccepted, envelope{"message": "report email queued"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	err := app.models.History.Delete(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "record successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
