package services

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
	"github.com/ewilliams-labs/vibestudio/internal/playback"
	"github.com/ewilliams-labs/vibestudio/internal/worker"
)

var studioLog = logger.For("studio")

// Studio is the application state: the stores, the player, the suggestion
// gateway and the pool that runs suggestions in the background.
type Studio struct {
	accounts *AccountService
	catalog  *CatalogService
	suggest  *SuggestionService
	player   *playback.Player
	pool     *worker.Pool
}

// NewStudio wires the application state together.
func NewStudio(accounts *AccountService, catalog *CatalogService, suggest *SuggestionService, player *playback.Player, pool *worker.Pool) *Studio {
	return &Studio{
		accounts: accounts,
		catalog:  catalog,
		suggest:  suggest,
		player:   player,
		pool:     pool,
	}
}

// NowPlaying is what the transport bar shows.
type NowPlaying struct {
	Song     *domain.Song
	Album    domain.Album
	Band     domain.Band
	State    playback.State
	Progress int
}

// Start restores the persisted session and loads its catalog.
func (s *Studio) Start(ctx context.Context) (domain.Account, bool, error) {
	account, ok, err := s.accounts.Restore(ctx)
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("studio: %w", err)
	}
	if _, err := s.catalog.LoadFor(ctx, account.ID); err != nil {
		s.rollbackSession(ctx)
		return domain.Account{}, false, fmt.Errorf("studio: %w", err)
	}
	if ok {
		studioLog.Infof("restored session for %s", account.Username)
	}
	return account, ok, nil
}

// Login authenticates (or registers) and scopes the catalog to the account.
func (s *Studio) Login(ctx context.Context, username, password string) (domain.Account, error) {
	previous, hadSession := s.accounts.Current()

	account, err := s.accounts.RegisterOrLogin(ctx, username, password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("studio: %w", err)
	}
	if hadSession && previous.ID != account.ID {
		s.player.Stop()
	}
	if _, err := s.catalog.LoadFor(ctx, account.ID); err != nil {
		s.rollbackSession(ctx)
		return domain.Account{}, fmt.Errorf("studio: %w", err)
	}
	return account, nil
}

// rollbackSession leaves no session and an unscoped catalog behind after a
// login whose catalog could not be loaded.
func (s *Studio) rollbackSession(ctx context.Context) {
	s.player.Stop()
	if _, err := s.catalog.LoadFor(ctx, ""); err != nil {
		studioLog.Errorf("unscope catalog: %v", err)
	}
	if err := s.accounts.Logout(ctx); err != nil {
		studioLog.Errorf("roll back session: %v", err)
	}
}

// Logout stops playback, clears the session and empties the catalog.
func (s *Studio) Logout(ctx context.Context) error {
	s.player.Stop()
	if err := s.accounts.Logout(ctx); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	if _, err := s.catalog.LoadFor(ctx, ""); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	return nil
}

// Current returns the logged-in account.
func (s *Studio) Current() (domain.Account, bool) {
	return s.accounts.Current()
}

// Catalog returns a copy of the active catalog.
func (s *Studio) Catalog() domain.Catalog {
	return s.catalog.Bands()
}

// DeleteBand removes a band and everything below it. Playback of one of its
// songs is left alone; NowPlaying reports it as idle.
func (s *Studio) DeleteBand(ctx context.Context, bandID string) error {
	if err := s.catalog.DeleteBand(ctx, bandID); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	return nil
}

// Play starts the song with the given id from the beginning.
func (s *Studio) Play(ctx context.Context, songID string) error {
	song, _, _, ok := s.catalog.Bands().FindSong(songID)
	if !ok {
		return fmt.Errorf("studio: %w", domain.NotFoundError{Kind: "song", ID: songID})
	}
	s.player.Play(song)
	return nil
}

// Toggle pauses or resumes playback.
func (s *Studio) Toggle() {
	s.player.Toggle()
}

// NowPlaying resolves the player state against the catalog. A song that no
// longer exists in the catalog is shown as idle.
func (s *Studio) NowPlaying() NowPlaying {
	snap := s.player.Snapshot()
	if snap.Song == nil {
		return NowPlaying{State: playback.Idle}
	}
	song, album, band, ok := s.catalog.Bands().FindSong(snap.Song.ID)
	if !ok {
		return NowPlaying{State: playback.Idle}
	}
	return NowPlaying{
		Song:     &song,
		Album:    album,
		Band:     band,
		State:    snap.State,
		Progress: snap.Progress,
	}
}

// NewBandForm opens an empty band form.
func (s *Studio) NewBandForm() *Form[BandDraft] {
	return NewForm(BandDraft{})
}

// NewAlbumForm opens an album form for bandID, prefilled with the band genre.
func (s *Studio) NewAlbumForm(bandID string) (*Form[AlbumDraft], error) {
	band, ok := s.catalog.Bands().Band(bandID)
	if !ok {
		return nil, fmt.Errorf("studio: %w", domain.NotFoundError{Kind: "band", ID: bandID})
	}
	return NewForm(AlbumDraft{BandID: band.ID, Genre: band.Genre}), nil
}

// NewSongForm opens a song form for the given album.
func (s *Studio) NewSongForm(bandID, albumID string) (*Form[SongDraft], error) {
	album, ok := s.catalog.Bands().Album(bandID, albumID)
	if !ok {
		return nil, fmt.Errorf("studio: %w", domain.NotFoundError{Kind: "album", ID: albumID})
	}
	return NewForm(SongDraft{
		BandID:     bandID,
		AlbumID:    album.ID,
		AlbumTitle: album.Title,
		Genre:      album.Genre,
	}), nil
}

// SaveBand builds a band from the draft, stores it and closes the form.
func (s *Studio) SaveBand(ctx context.Context, form *Form[BandDraft]) (domain.Band, error) {
	if form.Closed() {
		return domain.Band{}, ErrFormClosed
	}
	d := form.Draft()
	band, err := domain.NewBand(d.Name, d.Genre, d.Bio, d.Image)
	if err != nil {
		return domain.Band{}, fmt.Errorf("studio: band name: %w", err)
	}
	if err := s.catalog.AddBand(ctx, band); err != nil {
		return domain.Band{}, fmt.Errorf("studio: %w", err)
	}
	form.Close()
	return band, nil
}

// SaveAlbum builds an album from the draft, stores it and closes the form.
func (s *Studio) SaveAlbum(ctx context.Context, form *Form[AlbumDraft]) (domain.Album, error) {
	if form.Closed() {
		return domain.Album{}, ErrFormClosed
	}
	d := form.Draft()
	album, err := domain.NewAlbum(d.Title, d.Genre, d.Year, d.Cover)
	if err != nil {
		return domain.Album{}, fmt.Errorf("studio: album title: %w", err)
	}
	if err := s.catalog.AddAlbum(ctx, d.BandID, album); err != nil {
		return domain.Album{}, fmt.Errorf("studio: %w", err)
	}
	album.BandID = d.BandID
	form.Close()
	return album, nil
}

// SaveSong builds a song from the draft, stores it and closes the form.
func (s *Studio) SaveSong(ctx context.Context, form *Form[SongDraft]) (domain.Song, error) {
	if form.Closed() {
		return domain.Song{}, ErrFormClosed
	}
	d := form.Draft()
	song, err := domain.NewSong(d.Title, d.Duration, d.File, d.Cover)
	if err != nil {
		return domain.Song{}, fmt.Errorf("studio: song title: %w", err)
	}
	if err := s.catalog.AddSong(ctx, d.BandID, d.AlbumID, song); err != nil {
		return domain.Song{}, fmt.Errorf("studio: %w", err)
	}
	song.AlbumID = d.AlbumID
	form.Close()
	return song, nil
}

// Brainstorm asks the gateway for a band name and bio in the background.
// The returned channel yields the gateway result once it has been merged
// into the form.
func (s *Studio) Brainstorm(ctx context.Context, form *Form[BandDraft], mood string) (<-chan error, error) {
	genre := form.Draft().Genre
	return submit(ctx, s.pool, form, "brainstorm", func(ctx context.Context) (func(*BandDraft), error) {
		idea, err := s.suggest.BrainstormBand(ctx, genre, mood)
		if err != nil {
			return nil, err
		}
		return func(d *BandDraft) {
			d.Name = idea.Name
			d.Bio = idea.Bio
			d.AlbumIdeas = idea.AlbumTitles
		}, nil
	})
}

// SuggestTitles asks the gateway for five song titles in the background.
func (s *Studio) SuggestTitles(ctx context.Context, form *Form[SongDraft]) (<-chan error, error) {
	d := form.Draft()
	return submit(ctx, s.pool, form, "suggest titles", func(ctx context.Context) (func(*SongDraft), error) {
		titles, err := s.suggest.SuggestTrackNames(ctx, d.AlbumTitle, d.Genre)
		if err != nil {
			return nil, err
		}
		return func(d *SongDraft) {
			d.Suggestions = titles
		}, nil
	})
}

func submit[T any](ctx context.Context, pool *worker.Pool, form *Form[T], name string, fetch func(context.Context) (func(*T), error)) (<-chan error, error) {
	if err := form.begin(); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	ok := pool.Submit(worker.Job{
		Name: name,
		Run: func(jobCtx context.Context) {
			defer close(done)

			jobCtx, cancel := context.WithCancel(jobCtx)
			defer cancel()
			stop := context.AfterFunc(ctx, cancel)
			defer stop()

			apply, err := fetch(jobCtx)
			if !form.finish(err, apply) {
				studioLog.Debugf("%s: form closed, result discarded", name)
			}
			done <- err
		},
	})
	if !ok {
		form.abort()
		return nil, ErrQueueFull
	}
	return done, nil
}
