package notebook

import (
	"math/rand"
	"sync"
	"time"

	"github.com/goliatone/go-planner/pkg/interfaces"
)

// CuePolicy turns flip-settle events into audio cues. The pitch of the
// page-turn cue tracks how fast the flip ran: a flip at the nominal duration
// plays at pitch 1.0, faster flips shift up and slower flips shift down, always
// inside the clamped band, with a small random jitter so repeated flips do not
// sound mechanical. Settles landing inside the debounce window of the previous
// cue are coalesced into silence.
type CuePolicy struct {
	player    interfaces.AudioPlayer
	summaries *Summaries

	nominal   time.Duration
	pitchMin  float64
	pitchMax  float64
	jitter    float64
	debounce  time.Duration
	clipDelay time.Duration

	now      func() time.Time
	roll     func() float64
	schedule func(d time.Duration, fn func())

	mu        sync.Mutex
	lastCueAt time.Time
}

// CuePolicyOption configures the policy at construction time.
type CuePolicyOption func(*CuePolicy)

// WithCueClock overrides the clock used for debouncing.
func WithCueClock(clock func() time.Time) CuePolicyOption {
	return func(p *CuePolicy) {
		if clock != nil {
			p.now = clock
		}
	}
}

// WithCueJitterSource overrides the random source. The function must return
// values in [0, 1).
func WithCueJitterSource(roll func() float64) CuePolicyOption {
	return func(p *CuePolicy) {
		if roll != nil {
			p.roll = roll
		}
	}
}

// WithCueScheduler overrides how the delayed clip cue is scheduled. The
// default fires on a timer goroutine.
func WithCueScheduler(schedule func(d time.Duration, fn func())) CuePolicyOption {
	return func(p *CuePolicy) {
		if schedule != nil {
			p.schedule = schedule
		}
	}
}

// CueConfig carries the tuning knobs for the cue policy.
type CueConfig struct {
	// NominalFlip is the flip duration that maps to pitch 1.0.
	NominalFlip time.Duration
	PitchMin    float64
	PitchMax    float64
	Jitter      float64
	Debounce    time.Duration
	ClipDelay   time.Duration
}

// NewCuePolicy builds a cue policy.
func NewCuePolicy(player interfaces.AudioPlayer, summaries *Summaries, cfg CueConfig, opts ...CuePolicyOption) *CuePolicy {
	p := &CuePolicy{
		player:    player,
		summaries: summaries,
		nominal:   cfg.NominalFlip,
		pitchMin:  cfg.PitchMin,
		pitchMax:  cfg.PitchMax,
		jitter:    cfg.Jitter,
		debounce:  cfg.Debounce,
		clipDelay: cfg.ClipDelay,
		now:       time.Now,
		roll:      rand.Float64,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnFlipSettled plays the page-turn cue for a completed flip and, when the
// destination month's cached summaries show attached media, schedules the soft
// clip cue after a short delay. Both cues are fire-and-forget: they never block
// navigation.
func (p *CuePolicy) OnFlipSettled(elapsed time.Duration, destYear int, destMonth time.Month) {
	now := p.now()

	p.mu.Lock()
	if !p.lastCueAt.IsZero() && now.Sub(p.lastCueAt) < p.debounce {
		p.mu.Unlock()
		return
	}
	p.lastCueAt = now
	p.mu.Unlock()

	if p.player == nil {
		return
	}

	p.player.Play(interfaces.CuePageTurn, p.pitch(elapsed))

	if p.summaries != nil && p.summaries.HasAnyMedia(destYear, destMonth) {
		p.schedule(p.clipDelay, func() {
			p.player.Play(interfaces.CueClip, 1.0)
		})
	}
}

// pitch maps flip duration onto the clamped pitch band and applies jitter.
func (p *CuePolicy) pitch(elapsed time.Duration) float64 {
	pitch := 1.0
	if elapsed > 0 && p.nominal > 0 {
		pitch = float64(p.nominal) / float64(elapsed)
	}
	pitch += (p.roll()*2 - 1) * p.jitter
	return clamp(pitch, p.pitchMin, p.pitchMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
