package main

import (
	"net/url"
	"testing"

	"CourtsideApi/internal/assert"
	"CourtsideApi/internal/validator"
)

func TestReadString(t *testing.T) {
	app := &application{}
	qs := url.Values{"sort": []string{"oldest"}}

	assert.Equal(t, app.readString(qs, "sort", "newest"), "oldest")
	assert.Equal(t, app.readString(qs, "missing", "newest"), "newest")
}

func TestReadInt(t *testing.T) {
	app := &application{}

	tests := []struct {
		name      string
		qs        url.Values
		want      int
		wantValid bool
	}{
		{
			name:      "Present",
			qs:        url.Values{"limit": []string{"5"}},
			want:      5,
			wantValid: true,
		},
		{
			name:      "Missing Uses Default",
			qs:        url.Values{},
			want:      0,
			wantValid: true,
		},
		{
			name:      "Not An Integer",
			qs:        url.Values{"limit": []string{"five"}},
			want:      0,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			got := app.readInt(tt.qs, "limit", 0, v)
			assert.Equal(t, got, tt.want)
			assert.Equal(t, v.Valid(), tt.wantValid)
		})
	}
}
