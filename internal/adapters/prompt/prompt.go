// Package prompt builds the instructions sent to suggestion providers.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "Spanish"

// BandBrainstorm asks for a band name, a short biography and three album titles.
func BandBrainstorm(genre, mood, language string) string {
	return fmt.Sprintf(
		"Brainstorm a new %s band with a %s vibe. Give a creative band name, a short and compelling biography, and 3 possible album titles. Write everything in %s.",
		genre, mood, orDefault(language),
	)
}

// TrackNames asks for exactly domain.TrackSuggestionCount song titles.
func TrackNames(albumTitle, genre, language string) string {
	return fmt.Sprintf(
		"Suggest %d creative song titles for an album called %q in the %s genre. Write everything in %s.",
		domain.TrackSuggestionCount, albumTitle, genre, orDefault(language),
	)
}

func orDefault(language string) string {
	if strings.TrimSpace(language) == "" {
		return DefaultLanguage
	}
	return language
}
