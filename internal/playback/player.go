// Package playback simulates a transport: a current song, a playing flag and
// a cosmetic progress percentage advanced by a periodic tick.
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
)

const (
	// Step is how far one tick advances progress.
	Step = 1
	// MaxProgress ends the track.
	MaxProgress = 100
	// DefaultInterval is the tick period.
	DefaultInterval = time.Second
)

var log = logger.For("playback")

// State is the transport state.
type State int

const (
	Idle State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the player.
type Snapshot struct {
	Song     *domain.Song
	State    State
	Progress int
}

// Player owns the current song and at most one live tick handle.
type Player struct {
	mu       sync.Mutex
	sched    Scheduler
	interval time.Duration

	song     *domain.Song
	playing  bool
	progress int

	handle Handle
	gen    uint64
}

// NewPlayer returns an idle player. A nil scheduler uses a TickerScheduler.
func NewPlayer(sched Scheduler, interval time.Duration) *Player {
	if sched == nil {
		sched = TickerScheduler{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{sched: sched, interval: interval}
}

// Play loads song and starts it from zero, even if it is already current.
func (p *Player) Play(song domain.Song) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.song = &song
	p.progress = 0
	p.playing = true
	p.startLocked()
	log.Debugf("playing %s", song.ID)
}

// Toggle flips between playing and paused. It does nothing when idle.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.song == nil {
		return
	}
	if p.playing {
		p.playing = false
		p.cancelLocked()
		return
	}
	p.playing = true
	p.startLocked()
}

// Tick advances progress by one step. Reaching MaxProgress ends the track:
// the player pauses, progress returns to zero and the song stays loaded.
func (p *Player) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickLocked()
}

// Stop cancels the timer and unloads the song.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelLocked()
	p.song = nil
	p.playing = false
	p.progress = 0
}

// Snapshot returns a copy of the current state.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{Progress: p.progress}
	switch {
	case p.song == nil:
		snap.State = Idle
	case p.playing:
		snap.State = Playing
	default:
		snap.State = Paused
	}
	if p.song != nil {
		song := *p.song
		snap.Song = &song
	}
	return snap
}

func (p *Player) tickLocked() {
	if p.song == nil || !p.playing {
		return
	}
	p.progress += Step
	if p.progress >= MaxProgress {
		p.progress = 0
		p.playing = false
		p.cancelLocked()
		log.Debugf("track end %s", p.song.ID)
	}
}

func (p *Player) startLocked() {
	p.cancelLocked()
	gen := p.gen
	p.handle = p.sched.Every(p.interval, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		// a callback already in flight when its handle was replaced
		if gen != p.gen {
			return
		}
		p.tickLocked()
	})
}

func (p *Player) cancelLocked() {
	p.gen++
	if p.handle != nil {
		p.handle.Cancel()
		p.handle = nil
	}
}

// FormatElapsed renders a progress value as m:ss, one second per step.
func FormatElapsed(progress int) string {
	if progress < 0 {
		progress = 0
	}
	return fmt.Sprintf("%d:%02d", progress/60, progress%60)
}
