package services

import (
	"testing"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

func TestSongDraft_AttachFile(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		input     string
		wantTitle string
	}{
		{name: "Local file names an untitled song", input: "demo-take.mp3", wantTitle: "demo-take"},
		{name: "Local handle prefix is ignored", input: "local:mixes/Olas final.wav", wantTitle: "Olas final"},
		{name: "Remote URL uses its path", input: "https://cdn.test/audio/Mareas.mp3?sig=1", wantTitle: "Mareas"},
		{name: "Windows path", input: `C:\music\Uno.flac`, wantTitle: "Uno"},
		{name: "Typed title is kept", title: "Mine", input: "demo.mp3", wantTitle: "Mine"},
		{name: "Clearing the file keeps the title empty", input: "", wantTitle: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			d := SongDraft{Title: tc.title}
			file := domain.ParseMediaRef(tc.input)
			d.AttachFile(file)

			if d.File != file {
				t.Fatalf("file = %+v, want %+v", d.File, file)
			}
			if d.Title != tc.wantTitle {
				t.Fatalf("title = %q, want %q", d.Title, tc.wantTitle)
			}
		})
	}
}
