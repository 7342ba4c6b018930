package notebook

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// Direction names which way the notebook is flipping.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Navigator is the spread state machine. The notebook shows one spread per
// month of a fixed year; navigation is cyclic across the twelve spreads.
// Navigation input stays live while a flip is playing: a new target simply
// retargets the in-flight flip, and audio cues fire only on settle.
type Navigator struct {
	year      int
	summaries *Summaries
	decor     *DecorLayer
	cues      *CuePolicy
	logger    interfaces.Logger
	now       func() time.Time

	mu             sync.Mutex
	current        int // 0-based spread index, one per month
	target         int
	direction      Direction
	flipInProgress bool
	flipStartedAt  time.Time
}

// NavigatorOption configures the navigator at construction time.
type NavigatorOption func(*Navigator)

// WithNavigatorClock overrides the clock used to time flips.
func WithNavigatorClock(clock func() time.Time) NavigatorOption {
	return func(n *Navigator) {
		if clock != nil {
			n.now = clock
		}
	}
}

// WithStartMonth opens the notebook on the given month instead of January.
func WithStartMonth(month time.Month) NavigatorOption {
	return func(n *Navigator) {
		if month >= time.January && month <= time.December {
			n.current = int(month) - 1
			n.target = n.current
		}
	}
}

// NewNavigator constructs a navigator for one planner year.
func NewNavigator(year int, summaries *Summaries, decor *DecorLayer, cues *CuePolicy, logger interfaces.Logger, opts ...NavigatorOption) *Navigator {
	if logger == nil {
		logger = logging.NoOp()
	}
	n := &Navigator{
		year:      year,
		summaries: summaries,
		decor:     decor,
		cues:      cues,
		logger:    logger,
		now:       time.Now,
		direction: DirectionNext,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Year returns the planner year the navigator is bound to.
func (n *Navigator) Year() int { return n.year }

// GoTo begins a flip toward the given month. Calling it while a flip is in
// progress retargets the flip without restarting its timer.
func (n *Navigator) GoTo(ctx context.Context, month time.Month) {
	if month < time.January || month > time.December {
		return
	}
	target := int(month) - 1

	n.mu.Lock()
	if target == n.target && (n.flipInProgress || target == n.current) {
		n.mu.Unlock()
		return
	}

	if target > n.current {
		n.direction = DirectionNext
	} else if target < n.current {
		n.direction = DirectionPrev
	}
	n.target = target
	if !n.flipInProgress {
		n.flipInProgress = true
		n.flipStartedAt = n.now()
	}
	n.mu.Unlock()

	n.warm(ctx, month)
}

// Next flips forward one spread, wrapping from December to January.
func (n *Navigator) Next(ctx context.Context) {
	n.mu.Lock()
	target := (n.target + 1) % 12
	n.direction = DirectionNext
	if !n.flipInProgress {
		n.flipInProgress = true
		n.flipStartedAt = n.now()
	}
	n.target = target
	n.mu.Unlock()

	n.warm(ctx, time.Month(target+1))
}

// Prev flips back one spread, wrapping from January to December.
func (n *Navigator) Prev(ctx context.Context) {
	n.mu.Lock()
	target := (n.target + 11) % 12
	n.direction = DirectionPrev
	if !n.flipInProgress {
		n.flipInProgress = true
		n.flipStartedAt = n.now()
	}
	n.target = target
	n.mu.Unlock()

	n.warm(ctx, time.Month(target+1))
}

// OnFlipComplete settles the in-flight flip: the target spread becomes
// current and the cue policy is fed the measured flip duration. It is a no-op
// when no flip is in progress.
func (n *Navigator) OnFlipComplete() {
	n.mu.Lock()
	if !n.flipInProgress {
		n.mu.Unlock()
		return
	}
	elapsed := n.now().Sub(n.flipStartedAt)
	n.current = n.target
	n.flipInProgress = false
	n.flipStartedAt = time.Time{}
	month := time.Month(n.current + 1)
	n.mu.Unlock()

	n.logger.Debug("flip settled", "month", int(month), "elapsed_ms", elapsed.Milliseconds())
	if n.cues != nil {
		n.cues.OnFlipSettled(elapsed, n.year, month)
	}
}

// CurrentMonth returns the month of the visible (or settling) spread.
func (n *Navigator) CurrentMonth() time.Month {
	n.mu.Lock()
	defer n.mu.Unlock()
	return time.Month(n.current + 1)
}

// TargetMonth returns the month the notebook is flipping toward. It equals
// CurrentMonth when no flip is in progress.
func (n *Navigator) TargetMonth() time.Month {
	n.mu.Lock()
	defer n.mu.Unlock()
	return time.Month(n.target + 1)
}

// SpreadIndex returns the 0-based index of the visible spread.
func (n *Navigator) SpreadIndex() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Direction returns the direction of the most recent navigation.
func (n *Navigator) Direction() Direction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.direction
}

// FlipInProgress reports whether a flip is currently playing.
func (n *Navigator) FlipInProgress() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.flipInProgress
}

// warm kicks off the destination month's summary and decor fetches so they are
// cached by the time the flip settles. Fetches run off the navigation path.
func (n *Navigator) warm(ctx context.Context, month time.Month) {
	if n.summaries != nil {
		go n.summaries.Month(ctx, n.year, month)
	}
	if n.decor != nil {
		go n.decor.Month(ctx, n.year, month)
	}
}
