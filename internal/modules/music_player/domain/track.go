package domain

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
)

// TrackID is a unique identifier for a track in a queue.
type TrackID string

// NewTrackID returns a fresh random TrackID.
func NewTrackID() TrackID {
	return TrackID(uuid.NewString())
}

// Track represents a playable audio track.
//
// A track is created from a source URL and stays unresolved until it becomes
// the current track of a queue; only then is the Lavalink payload fetched.
type Track struct {
	ID          TrackID
	SourceURL   string
	Title       string // empty until resolved
	Encoded     string // Lavalink encoded track data
	Duration    time.Duration
	SourceName  string // e.g., "youtube", "soundcloud", "http"
	IsStream    bool
	Seekable    bool
	Volume      float64       // 0.0 to 1.0
	Position    time.Duration // last requested seek position
	RequesterID snowflake.ID  // Discord user who added the track
	EnqueuedAt  time.Time
}

// NewTrack creates an unresolved Track for the given source URL.
func NewTrack(sourceURL string, requesterID snowflake.ID, volume float64) *Track {
	return &Track{
		ID:          NewTrackID(),
		SourceURL:   sourceURL,
		Volume:      ClampVolume(volume),
		RequesterID: requesterID,
		EnqueuedAt:  time.Now().UTC(),
	}
}

// IsResolved reports whether the track carries a playable Lavalink payload.
func (t *Track) IsResolved() bool {
	return t.Encoded != ""
}

// MarkResolved records the metadata returned by the source resolver.
func (t *Track) MarkResolved(
	encoded string,
	title string,
	duration time.Duration,
	sourceName string,
	isStream bool,
	seekable bool,
) {
	t.Encoded = encoded
	t.Title = title
	t.Duration = duration
	t.SourceName = sourceName
	t.IsStream = isStream
	t.Seekable = seekable
}

// Source returns the parsed TrackSource for this track.
func (t *Track) Source() TrackSource {
	return ParseTrackSource(t.SourceName)
}

// DisplayTitle returns the title, or "Unknown" when the track has none.
func (t *Track) DisplayTitle() string {
	if t.Title == "" {
		return "Unknown"
	}
	return t.Title
}

// Clone returns a copy of the track that shares no state with the original.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ClampVolume restricts v to the range [0, 1].
func ClampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}
	if !t.IsResolved() {
		return "--:--"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders d as mm:ss, or hh:mm:ss when it spans an hour or more.
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
