package summary

import (
	"bytes"
	"context"
	json2 "encoding/json"
	"fmt"
	"net/http"
	strings2 "strings"
	"time"
)

// Fallback is returned whenever the text service cannot produce a summary.
// Summarization never blocks or fails the game-ending flow.
const Fallback = "The game has ended. Great effort from the whole team!"

type Tone string

const (
	ToneEnergetic  Tone = "ENERGETIC"
	ToneOfficial   Tone = "OFFICIAL"
	ToneAnalytical Tone = "ANALYTICAL"
)

func ValidTone(tone Tone) bool {
	switch tone {
	case ToneEnergetic, ToneOfficial, ToneAnalytical:
		return true
	}
	return false
}

// Input carries everything the service needs to write a post-game message
// for the parents' group chat.
type Input struct {
	Opponent      string
	Notes         string
	PlayerMinutes []string
	Injured       []string
	Tone          Tone
}

// Client calls an external text-generation service over HTTP. The engine
// never depends on it; a dead service degrades to the fallback string.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate returns prose for the given game, or the fallback string on any
// transport, status or decoding failure.
func (c *Client) Generate(ctx context.Context, input Input) string {
	if c.baseURL == "" {
		return Fallback
	}

	body, err := json2.Marshal(generateRequest{Prompt: buildPrompt(input)})
	if err != nil {
		return Fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return Fallback
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Fallback
	}

	var generated generateResponse
	if err := json2.NewDecoder(res.Body).Decode(&generated); err != nil {
		return Fallback
	}
	if strings2.TrimSpace(generated.Text) == "" {
		return Fallback
	}

	return generated.Text
}

func buildPrompt(input Input) string {
	var toneInstruction string
	switch input.Tone {
	case ToneOfficial:
		toneInstruction = "Write a factual, concise and informative message. Avoid hype and emojis."
	case ToneAnalytical:
		toneInstruction = "Write an analytical message that highlights learning and tactical points."
	default:
		toneInstruction = "Write an upbeat, energetic message. Emojis are welcome. Celebrate the effort!"
	}

	var b strings2.Builder
	b.WriteString("Write a short post-game message to the parents of a youth basketball team.\n\n")
	fmt.Fprintf(&b, "Opponent: %s\n", input.Opponent)
	fmt.Fprintf(&b, "Coach notes: %s\n", input.Notes)
	fmt.Fprintf(&b, "Minutes played: %s\n", strings2.Join(input.PlayerMinutes, ", "))
	if len(input.Injured) > 0 {
		fmt.Fprintf(&b, "Injured players (wish them a speedy recovery): %s\n",
			strings2.Join(input.Injured, ", "))
	}
	b.WriteString("\nStyle: ")
	b.WriteString(toneInstruction)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- If playing time was shared evenly, mention it as a positive.\n")
	b.WriteString("- Open the message by saying who the game was against.\n")
	b.WriteString("- Keep it under 100 words.\n")

	return b.String()
}
