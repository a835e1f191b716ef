package lifecycle

// State is the lifecycle state of one bot as seen by the poller.
type State string

const (
	// Created is the state before any status has been observed.
	Created State = "created"
	// InProgress covers every non-terminal provider code.
	InProgress State = "in_progress"
	// Done means the recording ended and a transcript URL is known.
	Done State = "done"
	// TranscriptPending means the recording ended but the artifact is not
	// yet discoverable or downloadable.
	TranscriptPending State = "transcript_pending"
	// TranscriptFailed means the artifact was fetched but is not a chunk array.
	TranscriptFailed State = "transcript_failed"
	// Analyzed means a validated decision was produced.
	Analyzed State = "analyzed"
)

// Terminal reports whether no further polling can change the outcome.
func (s State) Terminal() bool {
	return s == Analyzed || s == TranscriptFailed
}

// EventKind identifies what the poller just learned.
type EventKind int

const (
	// StatusObserved carries the bot's latest code and transcript URL.
	StatusObserved EventKind = iota
	// DownloadRefused means the artifact URL answered with a non-2xx status.
	DownloadRefused
	// ArtifactParsed means the artifact decoded as a chunk array.
	ArtifactParsed
	// ArtifactMalformed means the artifact was fetched but is not a chunk array.
	ArtifactMalformed
	// DecisionReady means analysis produced a validated decision.
	DecisionReady
)

func (k EventKind) String() string {
	switch k {
	case StatusObserved:
		return "status_observed"
	case DownloadRefused:
		return "download_refused"
	case ArtifactParsed:
		return "artifact_parsed"
	case ArtifactMalformed:
		return "artifact_malformed"
	case DecisionReady:
		return "decision_ready"
	default:
		return "unknown"
	}
}

// Event is an input to the state machine.
type Event struct {
	Kind          EventKind
	Code          string
	TranscriptURL string
}

// Action tells the poller what to do after a transition.
type Action int

const (
	// Wait ends this tick; poll again after the interval.
	Wait Action = iota
	// Download fetches the transcript artifact.
	Download
	// Analyze segments, renders and analyzes the parsed transcript.
	Analyze
	// Stop ends polling for good.
	Stop
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case Download:
		return "download"
	case Analyze:
		return "analyze"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Next is the transition function. Terminal states absorb every event.
func Next(s State, ev Event) (State, Action) {
	if s.Terminal() {
		return s, Stop
	}

	switch ev.Kind {
	case StatusObserved:
		switch {
		case Classify(ev.Code) == InProgress:
			return InProgress, Wait
		case ev.TranscriptURL == "":
			return TranscriptPending, Wait
		default:
			return Done, Download
		}
	case DownloadRefused:
		return TranscriptPending, Wait
	case ArtifactParsed:
		return Done, Analyze
	case ArtifactMalformed:
		return TranscriptFailed, Stop
	case DecisionReady:
		return Analyzed, Stop
	default:
		return s, Wait
	}
}

// Tracker holds the current state of one bot across events.
type Tracker struct {
	state State
}

// NewTracker returns a tracker in the Created state.
func NewTracker() *Tracker {
	return &Tracker{state: Created}
}

// Apply feeds ev through Next and returns the resulting action.
func (t *Tracker) Apply(ev Event) Action {
	var a Action
	t.state, a = Next(t.state, ev)
	return a
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}
