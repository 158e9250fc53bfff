package domain

import (
	"errors"
	"net/url"
	"strings"
)

// TrackSource represents the origin platform of a track.
type TrackSource string

const (
	TrackSourceYouTube    TrackSource = "youtube"
	TrackSourceSoundCloud TrackSource = "soundcloud"
	TrackSourceTwitch     TrackSource = "twitch"
	TrackSourceHTTP       TrackSource = "http"
	TrackSourceOther      TrackSource = "other"
)

// ParseTrackSource converts a source name string to a TrackSource.
func ParseTrackSource(name string) TrackSource {
	switch name {
	case "youtube":
		return TrackSourceYouTube
	case "soundcloud":
		return TrackSourceSoundCloud
	case "twitch":
		return TrackSourceTwitch
	case "http":
		return TrackSourceHTTP
	default:
		return TrackSourceOther
	}
}

var (
	ErrEmptySourceURL    = errors.New("source url is empty")
	ErrMalformedURL      = errors.New("source url is malformed")
	ErrUnsupportedScheme = errors.New("source url must use http or https")
)

// ParseSourceURL validates raw as an absolute http(s) URL with a host.
func ParseSourceURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptySourceURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, ErrMalformedURL
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, ErrMalformedURL
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, ErrUnsupportedScheme
	}
}
