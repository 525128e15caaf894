package data

import (
	"errors"
	"testing"

	"CourtsideApi/internal/assert"
	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/validator"
)

func TestValidateRosterTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template *RosterTemplate
		valid    bool
	}{
		{
			name: "Valid Template",
			template: &RosterTemplate{
				Name: "U12 Tigers",
				Players: []engine.RosterEntry{
					{Name: "Player 1", Number: 4},
					{Name: "Player 2", Number: 5},
				},
			},
			valid: true,
		},
		{
			name: "Missing Name",
			template: &RosterTemplate{
				Players: []engine.RosterEntry{{Name: "Player 1", Number: 4}},
			},
			valid: false,
		},
		{
			name:     "No Players",
			template: &RosterTemplate{Name: "U12 Tigers"},
			valid:    false,
		},
		{
			name: "Unnamed Player",
			template: &RosterTemplate{
				Name:    "U12 Tigers",
				Players: []engine.RosterEntry{{Number: 4}},
			},
			valid: false,
		},
		{
			name: "Number Out Of Range",
			template: &RosterTemplate{
				Name:    "U12 Tigers",
				Players: []engine.RosterEntry{{Name: "Player 1", Number: 120}},
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateRosterTemplate(v, tt.template)
			assert.Equal(t, v.Valid(), tt.valid)
		})
	}
}

func TestImportAllRejectsMalformedPayload(t *testing.T) {
	m := &RosterModel{}

	tests := []struct {
		name    string
		payload string
	}{
		{name: "Not JSON", payload: `not json at all`},
		{name: "Top Level Object", payload: `{"name": "U12 Tigers"}`},
		{name: "Roster Missing Name", payload: `[{"players": [{"name": "Player 1", "number": 4}]}]`},
		{name: "Roster Missing Players", payload: `[{"name": "U12 Tigers"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ImportAll(1, []byte(tt.payload))

			var modelErr ModelValidationErr
			if !errors.As(err, &modelErr) {
				t.Fatalf("got %v; want a model validation error", err)
			}
			assert.Equal(t, modelErr.Valid(), false)
		})
	}
}
