package prompt

import (
	"strings"
	"testing"
)

func TestBandBrainstorm(t *testing.T) {
	got := BandBrainstorm("shoegaze", "melancholic", "")
	for _, want := range []string{"shoegaze", "melancholic", "Spanish", "3 possible album titles"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt %q missing %q", got, want)
		}
	}
}

func TestTrackNames(t *testing.T) {
	got := TrackNames("Night Drive", "synthwave", "English")
	for _, want := range []string{"5 creative song titles", `"Night Drive"`, "synthwave", "English"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt %q missing %q", got, want)
		}
	}
}
