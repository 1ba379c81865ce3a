package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
)

// DefaultSuggestTimeout bounds one provider call.
const DefaultSuggestTimeout = 20 * time.Second

var suggestLog = logger.For("suggest")

var errNoProvider = errors.New("no suggestion provider configured")

// SuggestionService is the gateway to the text-generation provider. Every
// failure it returns is a *domain.GatewayError.
type SuggestionService struct {
	provider ports.SuggestionProvider
	timeout  time.Duration
}

// NewSuggestionService constructs a SuggestionService. provider may be nil,
// in which case every call fails as unavailable.
func NewSuggestionService(provider ports.SuggestionProvider, timeout time.Duration) *SuggestionService {
	if timeout <= 0 {
		timeout = DefaultSuggestTimeout
	}
	return &SuggestionService{provider: provider, timeout: timeout}
}

// Available reports whether a provider is configured.
func (s *SuggestionService) Available() bool {
	return s.provider != nil
}

// BrainstormBand asks for a band name and biography for genre and mood.
func (s *SuggestionService) BrainstormBand(ctx context.Context, genre, mood string) (domain.BandIdea, error) {
	const op = "suggest: brainstorm band"
	if strings.TrimSpace(genre) == "" {
		return domain.BandIdea{}, &domain.GatewayError{Op: op, Err: domain.ErrMissingField}
	}
	if s.provider == nil {
		return domain.BandIdea{}, &domain.GatewayError{Op: op, Err: errNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	idea, err := s.provider.BrainstormBand(ctx, genre, mood)
	if err != nil {
		suggestLog.Warnf("brainstorm failed: %v", err)
		return domain.BandIdea{}, &domain.GatewayError{Op: op, Err: err}
	}
	idea.Name = strings.TrimSpace(idea.Name)
	idea.Bio = strings.TrimSpace(idea.Bio)
	if idea.Name == "" || idea.Bio == "" {
		return domain.BandIdea{}, &domain.GatewayError{Op: op, Err: fmt.Errorf("incomplete idea %+v", idea)}
	}
	return idea, nil
}

// SuggestTrackNames asks for exactly domain.TrackSuggestionCount titles.
func (s *SuggestionService) SuggestTrackNames(ctx context.Context, albumTitle, genre string) ([]string, error) {
	const op = "suggest: track names"
	if s.provider == nil {
		return nil, &domain.GatewayError{Op: op, Err: errNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	titles, err := s.provider.SuggestTrackNames(ctx, albumTitle, genre)
	if err != nil {
		suggestLog.Warnf("track names failed: %v", err)
		return nil, &domain.GatewayError{Op: op, Err: err}
	}
	if len(titles) != domain.TrackSuggestionCount {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("got %d titles, want %d", len(titles), domain.TrackSuggestionCount)}
	}
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = strings.TrimSpace(t)
		if out[i] == "" {
			return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("title %d is empty", i+1)}
		}
	}
	return out, nil
}
