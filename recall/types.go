package recall

// Bot is the subset of the provider's bot resource the service reads.
type Bot struct {
	ID            string         `json:"id"`
	StatusChanges []StatusChange `json:"status_changes"`
	Recordings    []Recording    `json:"recordings"`
}

// StatusChange is one entry of a bot's status history, oldest first.
type StatusChange struct {
	Code      string  `json:"code"`
	SubCode   *string `json:"sub_code,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// Recording is one recording produced by a bot.
type Recording struct {
	ID             string         `json:"id"`
	MediaShortcuts MediaShortcuts `json:"media_shortcuts"`
}

// MediaShortcuts links a recording to its derived artifacts.
type MediaShortcuts struct {
	Transcript *TranscriptShortcut `json:"transcript"`
}

// TranscriptShortcut points at the transcript artifact, once it exists.
type TranscriptShortcut struct {
	Data *TranscriptData `json:"data"`
}

// TranscriptData carries the download URL. The provider has used both
// field names.
type TranscriptData struct {
	DownloadURL           *string `json:"download_url"`
	TranscriptDownloadURL *string `json:"transcript_download_url"`
}

// URL returns download_url, falling back to transcript_download_url.
func (d *TranscriptData) URL() string {
	if d == nil {
		return ""
	}
	if d.DownloadURL != nil {
		return *d.DownloadURL
	}
	if d.TranscriptDownloadURL != nil {
		return *d.TranscriptDownloadURL
	}
	return ""
}

// Download is a fetched transcript artifact, successful or not.
type Download struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx response.
func (d *Download) OK() bool {
	return d.StatusCode >= 200 && d.StatusCode < 300
}

type createBotRequest struct {
	MeetingURL      string          `json:"meeting_url"`
	BotName         string          `json:"bot_name"`
	RecordingConfig recordingConfig `json:"recording_config"`
}

type recordingConfig struct {
	Transcript transcriptConfig `json:"transcript"`
}

type transcriptConfig struct {
	Provider map[string]struct{} `json:"provider"`
}

type createBotResponse struct {
	ID string `json:"id"`
}
