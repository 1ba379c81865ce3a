// Package gemini provides a suggestion provider backed by the Gemini
// generateContent API with schema-constrained JSON output.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/vibestudio/internal/adapters/prompt"
	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"
	defaultTimeout = 30 * time.Second
)

const bandSchema = `{
	"type": "OBJECT",
	"properties": {
		"bandName": {"type": "STRING"},
		"bio": {"type": "STRING"},
		"suggestedAlbums": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["bandName", "bio", "suggestedAlbums"]
}`

const titlesSchema = `{"type": "ARRAY", "items": {"type": "STRING"}}`

// Config selects the endpoint and credentials. AccessToken, when set, is sent
// as an OAuth2 bearer token instead of the API key header.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	AccessToken string
	Language    string
}

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	language   string
	httpClient *http.Client
}

var _ ports.SuggestionProvider = (*Client)(nil)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	httpClient := &http.Client{Timeout: defaultTimeout}
	if cfg.AccessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: httpClient,
	}
}

func (c *Client) BrainstormBand(ctx context.Context, genre, mood string) (domain.BandIdea, error) {
	text, err := c.generate(ctx, prompt.BandBrainstorm(genre, mood, c.language), bandSchema)
	if err != nil {
		return domain.BandIdea{}, err
	}

	var idea domain.BandIdea
	if err := json.Unmarshal([]byte(text), &idea); err != nil {
		return domain.BandIdea{}, fmt.Errorf("gemini: decode band idea: %w", err)
	}
	return idea, nil
}

func (c *Client) SuggestTrackNames(ctx context.Context, albumTitle, genre string) ([]string, error) {
	text, err := c.generate(ctx, prompt.TrackNames(albumTitle, genre, c.language), titlesSchema)
	if err != nil {
		return nil, err
	}

	var titles []string
	if err := json.Unmarshal([]byte(text), &titles); err != nil {
		return nil, fmt.Errorf("gemini: decode titles: %w", err)
	}
	return titles, nil
}

func (c *Client) generate(ctx context.Context, instruction, schema string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: instruction}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(schema),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed generateResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("gemini: decode response: %w", decodeErr)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: %s", parsed.Error.Message)
	}

	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
