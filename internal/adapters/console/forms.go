package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/services"
)

var errNoForm = errors.New("no open form (try: new band)")

func (h *Handler) closeForms() {
	if h.bandForm != nil {
		h.bandForm.Close()
		h.bandForm = nil
	}
	if h.albumForm != nil {
		h.albumForm.Close()
		h.albumForm = nil
	}
	if h.songForm != nil {
		h.songForm.Close()
		h.songForm = nil
	}
	h.pending = nil
}

func (h *Handler) newForm(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("new band | new album <band-id> | new song <band-id> <album-id>")
	}
	switch strings.ToLower(args[0]) {
	case "band":
		h.closeForms()
		h.bandForm = h.studio.NewBandForm()
	case "album":
		if len(args) != 2 {
			return usage("new album <band-id>")
		}
		form, err := h.studio.NewAlbumForm(args[1])
		if err != nil {
			return err
		}
		h.closeForms()
		h.albumForm = form
	case "song":
		if len(args) != 3 {
			return usage("new song <band-id> <album-id>")
		}
		form, err := h.studio.NewSongForm(args[1], args[2])
		if err != nil {
			return err
		}
		h.closeForms()
		h.songForm = form
	default:
		return usage("new band | new album <band-id> | new song <band-id> <album-id>")
	}
	return h.form(ctx, nil)
}

func (h *Handler) set(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("set <field> <value>")
	}
	field := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")

	var known bool
	switch {
	case h.bandForm != nil:
		h.bandForm.Update(func(d *services.BandDraft) {
			known = true
			switch field {
			case "name":
				d.Name = value
			case "genre":
				d.Genre = value
			case "bio":
				d.Bio = value
			case "image":
				d.Image = domain.ParseMediaRef(value)
			default:
				known = false
			}
		})
	case h.albumForm != nil:
		if field == "year" && value != "" {
			year, err := strconv.Atoi(value)
			if err != nil || year < 0 {
				return errors.New("year must be a number")
			}
			h.albumForm.Update(func(d *services.AlbumDraft) { d.Year = year })
			return nil
		}
		h.albumForm.Update(func(d *services.AlbumDraft) {
			known = true
			switch field {
			case "title":
				d.Title = value
			case "genre":
				d.Genre = value
			case "year":
				d.Year = 0
			case "cover":
				d.Cover = domain.ParseMediaRef(value)
			default:
				known = false
			}
		})
	case h.songForm != nil:
		h.songForm.Update(func(d *services.SongDraft) {
			known = true
			switch field {
			case "title":
				d.Title = value
			case "duration":
				d.Duration = value
			case "file":
				d.AttachFile(domain.ParseMediaRef(value))
			case "cover":
				d.Cover = domain.ParseMediaRef(value)
			default:
				known = false
			}
		})
	default:
		return errNoForm
	}
	if !known {
		return errors.New("unknown field " + strconv.Quote(field))
	}
	return nil
}

func (h *Handler) suggest(ctx context.Context, args []string) error {
	var (
		done <-chan error
		err  error
	)
	switch {
	case h.bandForm != nil:
		done, err = h.studio.Brainstorm(ctx, h.bandForm, strings.Join(args, " "))
	case h.songForm != nil:
		done, err = h.studio.SuggestTitles(ctx, h.songForm)
	case h.albumForm != nil:
		return errors.New("suggestions are available for bands and songs")
	default:
		return errNoForm
	}
	if err != nil {
		return err
	}
	h.pending = done
	h.printf("thinking... (type form to see the result)\n")
	return nil
}

func (h *Handler) pick(ctx context.Context, args []string) error {
	if h.songForm == nil {
		return errors.New("pick needs an open song form")
	}
	if len(args) != 1 {
		return usage("pick <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usage("pick <n>")
	}
	var picked bool
	h.songForm.Update(func(d *services.SongDraft) { picked = d.Pick(n - 1) })
	if !picked {
		return errors.New("no suggestion " + args[0])
	}
	h.printf("title: %s\n", h.songForm.Draft().Title)
	return nil
}

func (h *Handler) form(ctx context.Context, args []string) error {
	var busy bool
	var notice string
	switch {
	case h.bandForm != nil:
		d := h.bandForm.Draft()
		busy, notice = h.bandForm.Busy(), h.bandForm.Notice()
		h.printf("new band\n  name:  %s\n  genre: %s\n  bio:   %s\n  image: %s\n", d.Name, d.Genre, d.Bio, d.Image.Or(domain.Placeholder(d.Name)))
		if len(d.AlbumIdeas) > 0 {
			h.printf("  album ideas: %s\n", strings.Join(d.AlbumIdeas, ", "))
		}
	case h.albumForm != nil:
		d := h.albumForm.Draft()
		busy, notice = h.albumForm.Busy(), h.albumForm.Notice()
		year := "current year"
		if d.Year != 0 {
			year = strconv.Itoa(d.Year)
		}
		h.printf("new album\n  title: %s\n  genre: %s\n  year:  %s\n  cover: %s\n", d.Title, d.Genre, year, d.Cover.Or(domain.Placeholder(d.Title)))
	case h.songForm != nil:
		d := h.songForm.Draft()
		busy, notice = h.songForm.Busy(), h.songForm.Notice()
		duration := d.Duration
		if duration == "" {
			duration = domain.DefaultSongDuration
		}
		h.printf("new song in %s\n  title:    %s\n  duration: %s\n  file:     %s\n", d.AlbumTitle, d.Title, duration, d.File)
		for i, s := range d.Suggestions {
			h.printf("  %d) %s\n", i+1, s)
		}
	default:
		return errNoForm
	}
	if busy {
		h.printf("  (suggestion in progress)\n")
	}
	if notice != "" {
		h.printf("  ! %s\n", notice)
	}
	return nil
}

func (h *Handler) dismiss(ctx context.Context, args []string) error {
	switch {
	case h.bandForm != nil:
		h.bandForm.Dismiss()
	case h.albumForm != nil:
		h.albumForm.Dismiss()
	case h.songForm != nil:
		h.songForm.Dismiss()
	default:
		return errNoForm
	}
	return nil
}

func (h *Handler) save(ctx context.Context, args []string) error {
	switch {
	case h.bandForm != nil:
		band, err := h.studio.SaveBand(ctx, h.bandForm)
		if err != nil {
			return err
		}
		h.printf("created band %s (%s)\n", band.Name, band.ID)
	case h.albumForm != nil:
		album, err := h.studio.SaveAlbum(ctx, h.albumForm)
		if err != nil {
			return err
		}
		h.printf("created album %s (%s)\n", album.Title, album.ID)
	case h.songForm != nil:
		song, err := h.studio.SaveSong(ctx, h.songForm)
		if err != nil {
			return err
		}
		h.printf("created song %s (%s)\n", song.Title, song.ID)
	default:
		return errNoForm
	}
	h.closeForms()
	return nil
}

func (h *Handler) cancel(ctx context.Context, args []string) error {
	if h.bandForm == nil && h.albumForm == nil && h.songForm == nil {
		return errNoForm
	}
	h.closeForms()
	h.printf("discarded\n")
	return nil
}
