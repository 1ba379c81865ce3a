package console

import (
	"context"
	"strings"

	"github.com/ewilliams-labs/vibestudio/internal/playback"
)

const barWidth = 20

func (h *Handler) play(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("play <song-id>")
	}
	if err := h.studio.Play(ctx, args[0]); err != nil {
		return err
	}
	return h.status(ctx, nil)
}

func (h *Handler) toggle(ctx context.Context, args []string) error {
	h.studio.Toggle()
	return h.status(ctx, nil)
}

func (h *Handler) status(ctx context.Context, args []string) error {
	now := h.studio.NowPlaying()
	if now.Song == nil {
		h.printf("[idle]\n")
		return nil
	}
	filled := now.Progress * barWidth / playback.MaxProgress
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	h.printf("[%s] %s - %s  %s [%s] %s\n",
		now.State, now.Song.Title, now.Band.Name,
		playback.FormatElapsed(now.Progress), bar, now.Song.Duration)
	return nil
}
