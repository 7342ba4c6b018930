package interfaces

// Cue names a sound the notebook session can request.
type Cue string

const (
	// CuePageTurn is the flip-settle sound. Pitch is derived from the flip
	// duration by the session's cue policy.
	CuePageTurn Cue = "page_turn"
	// CueClip is the soft clip sound fired when a destination month carries
	// attached media.
	CueClip Cue = "clip"
)

// AudioPlayer plays short UI cues. Implementations must not block: the
// navigator fires cues as best-effort side effects and never waits on them.
type AudioPlayer interface {
	Play(cue Cue, pitch float64)
}
