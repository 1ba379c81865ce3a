// Package ollama provides a suggestion provider backed by a local Ollama
// instance. Responses are constrained with a JSON schema passed as the
// request format and decoded strictly.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/vibestudio/internal/adapters/prompt"
	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "deepseek-r1:8b"
)

const systemPrompt = "You are the Vibe Studio creative assistant. You help musicians name bands, write biographies and title songs.\n\nRules:\nOutput: Return ONLY a valid JSON object matching the requested schema. No conversational text.\nTone: Creative, concise, never offensive."

const bandSchema = `{
	"type": "object",
	"properties": {
		"bandName": {"type": "string"},
		"bio": {"type": "string"},
		"suggestedAlbums": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["bandName", "bio", "suggestedAlbums"]
}`

const titlesSchema = `{
	"type": "object",
	"properties": {
		"titles": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["titles"]
}`

type Client struct {
	baseURL    string
	model      string
	language   string
	httpClient *http.Client
}

var _ ports.SuggestionProvider = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []chatMessage   `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

type titlesResponse struct {
	Titles []string `json:"titles"`
}

func NewClient(baseURL, model, language string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL:  baseURL,
		model:    model,
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) BrainstormBand(ctx context.Context, genre, mood string) (domain.BandIdea, error) {
	content, err := c.chat(ctx, prompt.BandBrainstorm(genre, mood, c.language), bandSchema)
	if err != nil {
		return domain.BandIdea{}, err
	}

	var idea domain.BandIdea
	if err := json.Unmarshal([]byte(content), &idea); err != nil {
		return domain.BandIdea{}, fmt.Errorf("ollama: decode band idea: %w", err)
	}
	return idea, nil
}

func (c *Client) SuggestTrackNames(ctx context.Context, albumTitle, genre string) ([]string, error) {
	content, err := c.chat(ctx, prompt.TrackNames(albumTitle, genre, c.language), titlesSchema)
	if err != nil {
		return nil, err
	}

	var parsed titlesResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("ollama: decode titles: %w", err)
	}
	return parsed.Titles, nil
}

func (c *Client) chat(ctx context.Context, message, schema string) (string, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Format: json.RawMessage(schema),
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}

	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", fmt.Errorf("ollama: empty response")
	}
	return content, nil
}
