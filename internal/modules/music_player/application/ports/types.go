package ports

import (
	"time"
)

// ResolvedSource contains the metadata of a loaded track.
type ResolvedSource struct {
	Identifier string // Unique identifier from Lavalink
	Encoded    string
	Title      string
	Duration   time.Duration
	URI        string
	SourceName string // e.g., "youtube", "soundcloud", "http"
	IsStream   bool
	IsSeekable bool
}
