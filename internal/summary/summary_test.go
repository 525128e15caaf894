package summary

import (
	"context"
	json2 "encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CourtsideApi/internal/assert"
)

func testInput() Input {
	return Input{
		Opponent:      "Hornets",
		Notes:         "strong first period",
		PlayerMinutes: []string{"Player 1: 12 min", "Player 2: 11 min"},
		Injured:       []string{"Player 3"},
		Tone:          ToneOfficial,
	}
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		assert.Equal(t, r.URL.Path, "/v1/generate")
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer secret")

		var req generateRequest
		assert.NilError(t, json2.NewDecoder(r.Body).Decode(&req))
		assert.StringContains(t, req.Prompt, "Hornets")
		assert.StringContains(t, req.Prompt, "Player 3")

		_ = json2.NewEncoder(w).Encode(generateResponse{Text: "Great game against the Hornets!"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	got := client.Generate(context.Background(), testInput())
	assert.Equal(t, got, "Great game against the Hornets!")
}

func TestGenerateFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Server Error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "Bad Body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "Empty Text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json2.NewEncoder(w).Encode(generateResponse{Text: "   "})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "")
			assert.Equal(t, client.Generate(context.Background(), testInput()), Fallback)
		})
	}
}

func TestGenerateUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	assert.Equal(t, client.Generate(context.Background(), testInput()), Fallback)
}

func TestGenerateUnconfigured(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, client.Generate(context.Background(), testInput()), Fallback)
}

func TestBuildPromptTones(t *testing.T) {
	input := testInput()

	input.Tone = ToneOfficial
	assert.StringContains(t, buildPrompt(input), "factual")

	input.Tone = ToneAnalytical
	assert.StringContains(t, buildPrompt(input), "analytical")

	input.Tone = ToneEnergetic
	assert.StringContains(t, buildPrompt(input), "energetic")
}

func TestBuildPromptOmitsEmptyInjuryList(t *testing.T) {
	input := testInput()
	input.Injured = nil

	if strings.Contains(buildPrompt(input), "Injured players") {
		t.Error("expected injury line to be omitted")
	}
}

func TestValidTone(t *testing.T) {
	assert.Equal(t, ValidTone(ToneEnergetic), true)
	assert.Equal(t, ValidTone(Tone("CASUAL")), false)
}
