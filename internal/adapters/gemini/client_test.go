package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": []any{map[string]string{"text": text}}}},
		},
	})
	return string(b)
}

func TestClient_BrainstormBand(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		wantErr      bool
		wantName     string
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: candidateBody(`{"bandName":"Los Ecos","bio":"Ruido y calma.","suggestedAlbums":["Mareas","Orillas","Faro"]}`),
			wantName:     "Los Ecos",
		},
		{
			name:         "Server error",
			status:       http.StatusServiceUnavailable,
			responseBody: `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`,
			wantErr:      true,
		},
		{
			name:         "Malformed model output",
			status:       http.StatusOK,
			responseBody: candidateBody(`{"bandName": "Half`),
			wantErr:      true,
		},
		{
			name:         "No candidates",
			status:       http.StatusOK,
			responseBody: `{"candidates":[]}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest generateRequest
			var gotKey, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.Header.Get("x-goog-api-key")
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL, APIKey: "key-1", Language: "Spanish"})
			idea, err := client.BrainstormBand(context.Background(), "post-rock", "melancholic")

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if gotPath != "/v1beta/models/gemini-3-flash-preview:generateContent" {
				t.Fatalf("unexpected path %q", gotPath)
			}
			if gotKey != "key-1" {
				t.Fatalf("expected api key header, got %q", gotKey)
			}
			if gotRequest.GenerationConfig.ResponseMimeType != "application/json" {
				t.Fatalf("expected json mime type, got %q", gotRequest.GenerationConfig.ResponseMimeType)
			}
			if !strings.Contains(string(gotRequest.GenerationConfig.ResponseSchema), `"bandName"`) {
				t.Fatalf("schema missing bandName: %s", gotRequest.GenerationConfig.ResponseSchema)
			}
			if len(gotRequest.Contents) != 1 || !strings.Contains(gotRequest.Contents[0].Parts[0].Text, "post-rock") {
				t.Fatalf("prompt mismatch: %+v", gotRequest.Contents)
			}
			if tt.wantErr {
				return
			}
			if idea.Name != tt.wantName || idea.Bio == "" || len(idea.AlbumTitles) != 3 {
				t.Fatalf("unexpected idea %+v", idea)
			}
		})
	}
}

func TestClient_SuggestTrackNames(t *testing.T) {
	want := []string{"Uno", "Dos", "Tres", "Cuatro", "Cinco"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !strings.Contains(string(req.GenerationConfig.ResponseSchema), `"ARRAY"`) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		raw, _ := json.Marshal(want)
		_, _ = w.Write([]byte(candidateBody(string(raw))))
	}))
	defer srv.Close()

	got, err := NewClient(Config{BaseURL: srv.URL}).SuggestTrackNames(context.Background(), "Mareas", "post-rock")
	if err != nil {
		t.Fatalf("SuggestTrackNames: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
}

func TestClient_AccessTokenUsesBearer(t *testing.T) {
	var gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("x-goog-api-key")
		_, _ = w.Write([]byte(candidateBody(`["a","b","c","d","e"]`)))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, AccessToken: "tok-9"})
	if _, err := client.SuggestTrackNames(context.Background(), "Mareas", "rock"); err != nil {
		t.Fatalf("SuggestTrackNames: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotKey != "" {
		t.Fatalf("api key header sent without a key: %q", gotKey)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(Config{BaseURL: srv.URL}).BrainstormBand(ctx, "rock", "loud"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
