package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultSongDuration is shown for songs created without a duration.
const DefaultSongDuration = "3:45"

// Song is a single track owned by an album.
type Song struct {
	ID       string   `json:"id"`
	AlbumID  string   `json:"albumId"`
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	File     MediaRef `json:"file"`
	Cover    MediaRef `json:"cover,omitzero"`
}

// Album is an ordered collection of songs owned by a band.
type Album struct {
	ID     string   `json:"id"`
	BandID string   `json:"bandId"`
	Title  string   `json:"title"`
	Genre  string   `json:"genre"`
	Year   int      `json:"year"`
	Cover  MediaRef `json:"cover"`
	Songs  []Song   `json:"songs"`
}

// Band is a music act and its albums.
type Band struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genre  string   `json:"genre"`
	Bio    string   `json:"bio"`
	Image  MediaRef `json:"image"`
	Albums []Album  `json:"albums"`
}

// NewBand builds a band with a fresh id. A missing image falls back to a
// placeholder seeded by the name.
func NewBand(name, genre, bio string, image MediaRef) (Band, error) {
	if strings.TrimSpace(name) == "" {
		return Band{}, ErrMissingField
	}
	return Band{
		ID:     NewID(),
		Name:   name,
		Genre:  genre,
		Bio:    bio,
		Image:  image.Or(Placeholder(name)),
		Albums: []Album{},
	}, nil
}

// NewAlbum builds an album with a fresh id. Year 0 means the current year.
func NewAlbum(title, genre string, year int, cover MediaRef) (Album, error) {
	if strings.TrimSpace(title) == "" {
		return Album{}, ErrMissingField
	}
	if year == 0 {
		year = time.Now().Year()
	}
	return Album{
		ID:    NewID(),
		Title: title,
		Genre: genre,
		Year:  year,
		Cover: cover.Or(Placeholder(title)),
		Songs: []Song{},
	}, nil
}

// NewSong builds a song with a fresh id. The duration string is not validated.
func NewSong(title, duration string, file, cover MediaRef) (Song, error) {
	if strings.TrimSpace(title) == "" {
		return Song{}, ErrMissingField
	}
	if strings.TrimSpace(duration) == "" {
		duration = DefaultSongDuration
	}
	return Song{
		ID:       NewID(),
		Title:    title,
		Duration: duration,
		File:     file,
		Cover:    cover,
	}, nil
}

// CoverFor returns the artwork to show for s inside album.
func (s Song) CoverFor(album Album) MediaRef {
	return s.Cover.Or(album.Cover).Or(Placeholder(s.ID))
}

// Catalog is the ordered band tree owned by one account. Its methods never
// modify the receiver; mutations return a new Catalog sharing untouched bands.
type Catalog []Band

// Band looks up a band by id.
func (c Catalog) Band(id string) (Band, bool) {
	return lo.Find(c, func(b Band) bool { return b.ID == id })
}

// Album looks up an album inside a band.
func (c Catalog) Album(bandID, albumID string) (Album, bool) {
	band, ok := c.Band(bandID)
	if !ok {
		return Album{}, false
	}
	return lo.Find(band.Albums, func(a Album) bool { return a.ID == albumID })
}

// FindSong locates a song anywhere in the catalog.
func (c Catalog) FindSong(songID string) (Song, Album, Band, bool) {
	for _, b := range c {
		for _, a := range b.Albums {
			if s, ok := lo.Find(a.Songs, func(s Song) bool { return s.ID == songID }); ok {
				return s, a, b, true
			}
		}
	}
	return Song{}, Album{}, Band{}, false
}

// WithBand appends b.
func (c Catalog) WithBand(b Band) Catalog {
	next := make(Catalog, 0, len(c)+1)
	next = append(next, c...)
	return append(next, b)
}

// WithAlbum appends a to the band identified by bandID.
func (c Catalog) WithAlbum(bandID string, a Album) (Catalog, error) {
	_, idx, ok := lo.FindIndexOf(c, func(b Band) bool { return b.ID == bandID })
	if !ok {
		return nil, NotFoundError{Kind: "band", ID: bandID}
	}
	a.BandID = bandID
	if a.Songs == nil {
		a.Songs = []Song{}
	}

	next := slices.Clone(c)
	band := next[idx]
	band.Albums = append(slices.Clone(band.Albums), a)
	next[idx] = band
	return next, nil
}

// WithSong appends s to the album identified by (bandID, albumID).
func (c Catalog) WithSong(bandID, albumID string, s Song) (Catalog, error) {
	_, bandIdx, ok := lo.FindIndexOf(c, func(b Band) bool { return b.ID == bandID })
	if !ok {
		return nil, NotFoundError{Kind: "band", ID: bandID}
	}
	_, albumIdx, ok := lo.FindIndexOf(c[bandIdx].Albums, func(a Album) bool { return a.ID == albumID })
	if !ok {
		return nil, NotFoundError{Kind: "album", ID: albumID}
	}
	s.AlbumID = albumID

	next := slices.Clone(c)
	band := next[bandIdx]
	band.Albums = slices.Clone(band.Albums)
	album := band.Albums[albumIdx]
	album.Songs = append(slices.Clone(album.Songs), s)
	band.Albums[albumIdx] = album
	next[bandIdx] = band
	return next, nil
}

// WithoutBand removes the band with the given id and everything it owns.
// Removing an unknown id returns an equal catalog.
func (c Catalog) WithoutBand(id string) Catalog {
	return lo.Reject(c, func(b Band, _ int) bool { return b.ID == id })
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return Catalog{}
	}
	next := make(Catalog, len(c))
	for i, b := range c {
		albums := make([]Album, len(b.Albums))
		for j, a := range b.Albums {
			a.Songs = append([]Song{}, a.Songs...)
			albums[j] = a
		}
		b.Albums = albums
		next[i] = b
	}
	return next
}

// SongCount totals the songs in every album of b.
func (b Band) SongCount() int {
	return lo.SumBy(b.Albums, func(a Album) int { return len(a.Songs) })
}
