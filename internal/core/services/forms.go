package services

import (
	"errors"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

// NoticeSuggestionsUnavailable is shown on a form whose suggestion request failed.
const NoticeSuggestionsUnavailable = "suggestions unavailable"

var (
	// ErrFormClosed is returned when acting on a saved or cancelled form.
	ErrFormClosed = errors.New("services: form closed")
	// ErrFormBusy is returned when a suggestion is already in flight for a form.
	ErrFormBusy = errors.New("services: suggestion in progress")
	// ErrQueueFull is returned when the background pool rejects a request.
	ErrQueueFull = errors.New("services: suggestion queue full")
)

// BandDraft holds the fields of a band being created.
type BandDraft struct {
	Name       string
	Genre      string
	Bio        string
	Image      domain.MediaRef
	AlbumIdeas []string
}

// AlbumDraft holds the fields of an album being created.
type AlbumDraft struct {
	BandID string
	Title  string
	Genre  string
	Year   int
	Cover  domain.MediaRef
}

// SongDraft holds the fields of a song being created plus the last batch of
// suggested titles.
type SongDraft struct {
	BandID      string
	AlbumID     string
	AlbumTitle  string
	Genre       string
	Title       string
	Duration    string
	File        domain.MediaRef
	Cover       domain.MediaRef
	Suggestions []string
}

// AttachFile sets the audio file. While no title has been typed the song is
// named after the file, without its extension.
func (d *SongDraft) AttachFile(file domain.MediaRef) {
	d.File = file
	if strings.TrimSpace(d.Title) == "" {
		d.Title = titleFromFile(file)
	}
}

func titleFromFile(file domain.MediaRef) string {
	name := file.Value
	if file.Kind == domain.MediaRemote {
		if u, err := url.Parse(name); err == nil {
			name = u.Path
		}
	}
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Pick copies the i-th suggestion (zero based) into the title.
func (d *SongDraft) Pick(i int) bool {
	if i < 0 || i >= len(d.Suggestions) {
		return false
	}
	d.Title = d.Suggestions[i]
	return true
}

// Form is an open creation form. A background suggestion may complete after
// the form was saved or cancelled; its result is then dropped.
type Form[T any] struct {
	mu     sync.Mutex
	draft  T
	busy   bool
	notice string
	closed bool
}

// NewForm opens a form around draft.
func NewForm[T any](draft T) *Form[T] {
	return &Form[T]{draft: draft}
}

// Draft returns a copy of the current field values.
func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Update edits the draft in place. It reports false once the form is closed.
func (f *Form[T]) Update(edit func(*T)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	edit(&f.draft)
	return true
}

// Close marks the form as gone.
func (f *Form[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Form[T]) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Busy reports whether a suggestion is in flight.
func (f *Form[T]) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *Form[T]) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Dismiss clears the notice.
func (f *Form[T]) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = ""
}

func (f *Form[T]) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.closed:
		return ErrFormClosed
	case f.busy:
		return ErrFormBusy
	}
	f.busy = true
	f.notice = ""
	return nil
}

func (f *Form[T]) abort() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
}

// finish applies a suggestion result. A failure only sets the notice.
// It reports false when the form was closed in the meantime.
func (f *Form[T]) finish(err error, apply func(*T)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.busy = false
	if f.closed {
		return false
	}
	if err != nil {
		f.notice = NoticeSuggestionsUnavailable
		return true
	}
	apply(&f.draft)
	return true
}
