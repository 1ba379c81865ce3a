package ports

import (
	"context"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

// SuggestionProvider is an external text-generation service returning
// structured suggestions.
type SuggestionProvider interface {
	BrainstormBand(ctx context.Context, genre, mood string) (domain.BandIdea, error)
	SuggestTrackNames(ctx context.Context, albumTitle, genre string) ([]string, error)
}
