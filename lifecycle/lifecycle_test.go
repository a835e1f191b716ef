package lifecycle

import (
	"testing"

	"github.com/kbukum/meetverdict/recall"
)

func strPtr(s string) *string { return &s }

func botWith(codes []string, urls ...*string) *recall.Bot {
	bot := &recall.Bot{ID: "bot-1"}
	for _, c := range codes {
		bot.StatusChanges = append(bot.StatusChanges, recall.StatusChange{Code: c})
	}
	for _, u := range urls {
		rec := recall.Recording{}
		if u != nil {
			rec.MediaShortcuts.Transcript = &recall.TranscriptShortcut{
				Data: &recall.TranscriptData{DownloadURL: u},
			}
		}
		bot.Recordings = append(bot.Recordings, rec)
	}
	return bot
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want State
	}{
		{"done", Done},
		{"DONE", Done},
		{"recording_done", Done},
		{"CALL_ENDED", Done},
		{"Call_Ended", Done},
		{"in_call_recording", InProgress},
		{"joining_call", InProgress},
		{"done_ish", InProgress},
		{"call_ended ", InProgress},
		{"", InProgress},
		{UnknownCode, InProgress},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Classify(tt.code); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestLastCode(t *testing.T) {
	tests := []struct {
		name string
		bot  *recall.Bot
		want string
	}{
		{"nil bot", nil, UnknownCode},
		{"empty history", botWith(nil), UnknownCode},
		{"last entry wins", botWith([]string{"joining", "in_call_recording", "call_ended"}), "call_ended"},
		{"blank code", botWith([]string{"joining", ""}), UnknownCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastCode(tt.bot); got != tt.want {
				t.Errorf("LastCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscriptURL(t *testing.T) {
	tests := []struct {
		name string
		bot  *recall.Bot
		want string
	}{
		{"no recordings", botWith([]string{"done"}), ""},
		{"no shortcut", botWith([]string{"done"}, nil), ""},
		{"latest recording only", botWith([]string{"done"}, strPtr("https://old"), nil), ""},
		{"latest recording url", botWith([]string{"done"}, nil, strPtr("https://new")), "https://new"},
		{"fallback field", &recall.Bot{Recordings: []recall.Recording{{
			MediaShortcuts: recall.MediaShortcuts{Transcript: &recall.TranscriptShortcut{
				Data: &recall.TranscriptData{TranscriptDownloadURL: strPtr("https://alt")},
			}},
		}}}, "https://alt"},
		{"shortcut without data", &recall.Bot{Recordings: []recall.Recording{{
			MediaShortcuts: recall.MediaShortcuts{Transcript: &recall.TranscriptShortcut{}},
		}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranscriptURL(tt.bot); got != tt.want {
				t.Errorf("TranscriptURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name       string
		from       State
		ev         Event
		wantState  State
		wantAction Action
	}{
		{"not started", Created, Event{Kind: StatusObserved, Code: UnknownCode}, InProgress, Wait},
		{"recording", InProgress, Event{Kind: StatusObserved, Code: "in_call_recording"}, InProgress, Wait},
		{"ended without url", InProgress, Event{Kind: StatusObserved, Code: "call_ended"}, TranscriptPending, Wait},
		{"ended with url", TranscriptPending, Event{Kind: StatusObserved, Code: "done", TranscriptURL: "u"}, Done, Download},
		{"download refused", Done, Event{Kind: DownloadRefused}, TranscriptPending, Wait},
		{"artifact parsed", Done, Event{Kind: ArtifactParsed}, Done, Analyze},
		{"artifact malformed", Done, Event{Kind: ArtifactMalformed}, TranscriptFailed, Stop},
		{"decision", Done, Event{Kind: DecisionReady}, Analyzed, Stop},
		{"analyzed absorbs", Analyzed, Event{Kind: StatusObserved, Code: "in_call_recording"}, Analyzed, Stop},
		{"failed absorbs", TranscriptFailed, Event{Kind: StatusObserved, Code: "done", TranscriptURL: "u"}, TranscriptFailed, Stop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, a := Next(tt.from, tt.ev)
			if s != tt.wantState || a != tt.wantAction {
				t.Errorf("Next(%s, %s) = (%s, %s), want (%s, %s)",
					tt.from, tt.ev.Kind, s, a, tt.wantState, tt.wantAction)
			}
		})
	}
}

func TestNext_FollowsClassify(t *testing.T) {
	for _, code := range []string{"done", "Recording_Done", "call_ended", "joining_call", "fatal", "", UnknownCode} {
		t.Run(code, func(t *testing.T) {
			s, a := Next(InProgress, Event{Kind: StatusObserved, Code: code, TranscriptURL: "u"})
			wantAction := Wait
			if Classify(code) == Done {
				wantAction = Download
			}
			if s != Classify(code) || a != wantAction {
				t.Errorf("Next(%q) = (%s, %s), Classify = %s", code, s, a, Classify(code))
			}
		})
	}
}

func TestTracker_HappyPath(t *testing.T) {
	tr := NewTracker()
	if tr.State() != Created {
		t.Fatalf("initial state = %s", tr.State())
	}

	steps := []struct {
		ev   Event
		want Action
	}{
		{Observe(botWith([]string{"joining"})), Wait},
		{Observe(botWith([]string{"joining", "call_ended"})), Wait},
		{Observe(botWith([]string{"joining", "call_ended"}, strPtr("https://t"))), Download},
		{Event{Kind: ArtifactParsed}, Analyze},
		{Event{Kind: DecisionReady}, Stop},
	}
	for i, step := range steps {
		if got := tr.Apply(step.ev); got != step.want {
			t.Fatalf("step %d: action = %s, want %s", i, got, step.want)
		}
	}
	if tr.State() != Analyzed || !tr.State().Terminal() {
		t.Errorf("final state = %s", tr.State())
	}
}
