package console

import (
	"context"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

func (h *Handler) bands(ctx context.Context, args []string) error {
	catalog := h.studio.Catalog()
	if len(catalog) == 0 {
		h.printf("no bands yet (try: new band)\n")
		return nil
	}
	for _, b := range catalog {
		h.printf("%s  %s  [%s]  %d albums, %d songs\n", b.ID, b.Name, b.Genre, len(b.Albums), b.SongCount())
	}
	return nil
}

func (h *Handler) show(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		band, ok := h.studio.Catalog().Band(args[0])
		if !ok {
			return domain.NotFoundError{Kind: "band", ID: args[0]}
		}
		h.printf("%s [%s]\n", band.Name, band.Genre)
		h.printf("image: %s\n", band.Image)
		if band.Bio != "" {
			h.printf("%s\n", band.Bio)
		}
		if len(band.Albums) == 0 {
			h.printf("no albums yet\n")
		}
		for _, a := range band.Albums {
			h.printf("  %s  %s (%d)  %d songs  cover: %s\n", a.ID, a.Title, a.Year, len(a.Songs), a.Cover)
		}
	case 2:
		band, _ := h.studio.Catalog().Band(args[0])
		album, ok := h.studio.Catalog().Album(args[0], args[1])
		if !ok {
			return domain.NotFoundError{Kind: "album", ID: args[1]}
		}
		h.printf("%s - %s (%d) [%s]\n", band.Name, album.Title, album.Year, album.Genre)
		h.printf("cover: %s\n", album.Cover)
		if len(album.Songs) == 0 {
			h.printf("no songs yet\n")
		}
		for i, s := range album.Songs {
			h.printf("  %2d. %s  %s  %s  cover: %s\n", i+1, s.ID, s.Title, s.Duration, s.CoverFor(album))
		}
	default:
		return usage("show <band-id> [album-id]")
	}
	return nil
}

func (h *Handler) delete(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("delete <band-id> yes")
	}
	band, ok := h.studio.Catalog().Band(args[0])
	if !ok {
		h.printf("nothing to delete\n")
		return nil
	}
	if len(args) != 2 || args[1] != "yes" {
		h.printf("this deletes %s with %d albums and %d songs; confirm with: delete %s yes\n",
			band.Name, len(band.Albums), band.SongCount(), band.ID)
		return nil
	}
	if err := h.studio.DeleteBand(ctx, band.ID); err != nil {
		return err
	}
	h.printf("deleted %s\n", band.Name)
	return nil
}
