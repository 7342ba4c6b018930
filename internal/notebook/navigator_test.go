package notebook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-planner/internal/notebook"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

type playedCue struct {
	cue   interfaces.Cue
	pitch float64
}

type recordingPlayer struct {
	mu    sync.Mutex
	cues  []playedCue
}

func (p *recordingPlayer) Play(cue interfaces.Cue, pitch float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cues = append(p.cues, playedCue{cue: cue, pitch: pitch})
}

func (p *recordingPlayer) played() []playedCue {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]playedCue, len(p.cues))
	copy(out, p.cues)
	return out
}

type manualClock struct {
	mu  sync.Mutex
	at  time.Time
}

func newManualClock() *manualClock {
	return &manualClock{at: time.Unix(1000, 0)}
}

func (c *manualClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *manualClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

func testCueConfig() notebook.CueConfig {
	return notebook.CueConfig{
		NominalFlip: 900 * time.Millisecond,
		PitchMin:    0.9,
		PitchMax:    1.1,
		Jitter:      0.02,
		Debounce:    150 * time.Millisecond,
		ClipDelay:   300 * time.Millisecond,
	}
}

// centeredRoll cancels jitter so pitch assertions are exact.
func centeredRoll() float64 { return 0.5 }

func newTestPolicy(player interfaces.AudioPlayer, summaries *notebook.Summaries, clock *manualClock, schedule func(time.Duration, func())) *notebook.CuePolicy {
	opts := []notebook.CuePolicyOption{
		notebook.WithCueClock(clock.now),
		notebook.WithCueJitterSource(centeredRoll),
	}
	if schedule != nil {
		opts = append(opts, notebook.WithCueScheduler(schedule))
	}
	return notebook.NewCuePolicy(player, summaries, testCueConfig(), opts...)
}

func TestCuePitchTracksFlipDuration(t *testing.T) {
	player := &recordingPlayer{}
	clock := newManualClock()
	policy := newTestPolicy(player, nil, clock, nil)

	policy.OnFlipSettled(900*time.Millisecond, 2026, time.March)
	clock.advance(time.Second)
	policy.OnFlipSettled(450*time.Millisecond, 2026, time.March)
	clock.advance(time.Second)
	policy.OnFlipSettled(1800*time.Millisecond, 2026, time.March)

	cues := player.played()
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	if cues[0].pitch != 1.0 {
		t.Fatalf("nominal flip should play at pitch 1.0, got %v", cues[0].pitch)
	}
	if cues[1].pitch != 1.1 {
		t.Fatalf("fast flip should clamp to the top of the band, got %v", cues[1].pitch)
	}
	if cues[2].pitch != 0.9 {
		t.Fatalf("slow flip should clamp to the bottom of the band, got %v", cues[2].pitch)
	}
	for _, cue := range cues {
		if cue.cue != interfaces.CuePageTurn {
			t.Fatalf("expected page-turn cues, got %q", cue.cue)
		}
	}
}

func TestCueJitterStaysInsideBand(t *testing.T) {
	player := &recordingPlayer{}
	clock := newManualClock()
	rolls := []float64{0.0, 0.25, 0.75, 0.999}
	i := 0
	policy := notebook.NewCuePolicy(player, nil, testCueConfig(),
		notebook.WithCueClock(clock.now),
		notebook.WithCueJitterSource(func() float64 {
			roll := rolls[i%len(rolls)]
			i++
			return roll
		}))

	for range rolls {
		policy.OnFlipSettled(900*time.Millisecond, 2026, time.March)
		clock.advance(time.Second)
	}

	for _, cue := range player.played() {
		if cue.pitch < 0.9 || cue.pitch > 1.1 {
			t.Fatalf("pitch %v escaped the clamped band", cue.pitch)
		}
	}
}

func TestCueDebounceCoalescesRapidFlips(t *testing.T) {
	player := &recordingPlayer{}
	clock := newManualClock()
	policy := newTestPolicy(player, nil, clock, nil)

	policy.OnFlipSettled(300*time.Millisecond, 2026, time.March)
	clock.advance(100 * time.Millisecond)
	policy.OnFlipSettled(300*time.Millisecond, 2026, time.April)
	clock.advance(100 * time.Millisecond)
	policy.OnFlipSettled(300*time.Millisecond, 2026, time.May)

	if got := len(player.played()); got != 1 {
		t.Fatalf("rapid flips should coalesce into one cue, got %d", got)
	}

	clock.advance(200 * time.Millisecond)
	policy.OnFlipSettled(300*time.Millisecond, 2026, time.June)
	if got := len(player.played()); got != 2 {
		t.Fatalf("a settle outside the window should cue again, got %d", got)
	}
}

func TestCueClipFiresOnlyForCachedMediaMonths(t *testing.T) {
	player := &recordingPlayer{}
	clock := newManualClock()
	summaries := notebook.NewSummaries(&monthStub{}, nil)

	var scheduled []time.Duration
	schedule := func(d time.Duration, fn func()) {
		scheduled = append(scheduled, d)
		fn()
	}
	policy := newTestPolicy(player, summaries, clock, schedule)

	// Destination month not cached yet: page turn only.
	policy.OnFlipSettled(900*time.Millisecond, 2026, time.March)
	if got := len(player.played()); got != 1 {
		t.Fatalf("expected page-turn cue only, got %d cues", got)
	}

	summaries.Month(context.Background(), 2026, time.March)
	clock.advance(time.Second)

	policy.OnFlipSettled(900*time.Millisecond, 2026, time.March)
	cues := player.played()
	if len(cues) != 3 {
		t.Fatalf("expected page-turn plus clip, got %d cues", len(cues))
	}
	if cues[2].cue != interfaces.CueClip {
		t.Fatalf("expected clip cue, got %q", cues[2].cue)
	}
	if len(scheduled) != 1 || scheduled[0] != 300*time.Millisecond {
		t.Fatalf("clip cue should be delayed by the configured window, got %v", scheduled)
	}
}

func TestNavigatorFlipLifecycle(t *testing.T) {
	clock := newManualClock()
	player := &recordingPlayer{}
	summaries := notebook.NewSummaries(&monthStub{}, nil)
	policy := newTestPolicy(player, summaries, clock, nil)

	nav := notebook.NewNavigator(2026, summaries, nil, policy, nil,
		notebook.WithNavigatorClock(clock.now),
		notebook.WithStartMonth(time.March))

	if nav.CurrentMonth() != time.March || nav.SpreadIndex() != 2 {
		t.Fatalf("unexpected initial spread: %s / %d", nav.CurrentMonth(), nav.SpreadIndex())
	}

	ctx := context.Background()
	nav.GoTo(ctx, time.May)
	if !nav.FlipInProgress() {
		t.Fatal("expected flip in progress after GoTo")
	}
	if nav.Direction() != notebook.DirectionNext {
		t.Fatalf("expected next direction, got %q", nav.Direction())
	}
	if nav.CurrentMonth() != time.March || nav.TargetMonth() != time.May {
		t.Fatalf("current must not move before settle: %s -> %s", nav.CurrentMonth(), nav.TargetMonth())
	}

	clock.advance(900 * time.Millisecond)
	nav.OnFlipComplete()

	if nav.FlipInProgress() {
		t.Fatal("expected flip settled")
	}
	if nav.CurrentMonth() != time.May {
		t.Fatalf("expected may after settle, got %s", nav.CurrentMonth())
	}
	cues := player.played()
	if len(cues) != 1 || cues[0].cue != interfaces.CuePageTurn || cues[0].pitch != 1.0 {
		t.Fatalf("expected one nominal page-turn cue, got %v", cues)
	}
}

func TestNavigatorRetargetsMidFlip(t *testing.T) {
	clock := newManualClock()
	nav := notebook.NewNavigator(2026, nil, nil, nil, nil,
		notebook.WithNavigatorClock(clock.now),
		notebook.WithStartMonth(time.January))

	ctx := context.Background()
	nav.GoTo(ctx, time.February)
	clock.advance(200 * time.Millisecond)
	nav.GoTo(ctx, time.April)

	if nav.TargetMonth() != time.April {
		t.Fatalf("expected retarget to april, got %s", nav.TargetMonth())
	}

	clock.advance(700 * time.Millisecond)
	nav.OnFlipComplete()
	if nav.CurrentMonth() != time.April {
		t.Fatalf("expected april after settle, got %s", nav.CurrentMonth())
	}

	// Completing again without a flip is a no-op.
	nav.OnFlipComplete()
	if nav.CurrentMonth() != time.April {
		t.Fatal("settled state must be stable")
	}
}

func TestNavigatorWrapsAcrossYearBoundary(t *testing.T) {
	clock := newManualClock()
	nav := notebook.NewNavigator(2026, nil, nil, nil, nil,
		notebook.WithNavigatorClock(clock.now),
		notebook.WithStartMonth(time.December))

	ctx := context.Background()
	nav.Next(ctx)
	nav.OnFlipComplete()
	if nav.CurrentMonth() != time.January {
		t.Fatalf("expected december to wrap to january, got %s", nav.CurrentMonth())
	}

	nav.Prev(ctx)
	nav.OnFlipComplete()
	if nav.CurrentMonth() != time.December {
		t.Fatalf("expected january to wrap back to december, got %s", nav.CurrentMonth())
	}
	if nav.Direction() != notebook.DirectionPrev {
		t.Fatalf("expected prev direction, got %q", nav.Direction())
	}
}
