package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// MediaKind tags the variant held by a MediaRef.
type MediaKind string

const (
	MediaPlaceholder MediaKind = "placeholder"
	MediaRemote      MediaKind = "remote"
	MediaLocal       MediaKind = "local"
)

const placeholderBaseURL = "https://picsum.photos/seed"

// MediaRef is an opaque reference to an image or audio asset. The zero value
// means no asset.
type MediaRef struct {
	Kind  MediaKind `json:"kind,omitempty"`
	Value string    `json:"value,omitempty"`
}

// Placeholder references a generated image derived from seed.
func Placeholder(seed string) MediaRef {
	return MediaRef{Kind: MediaPlaceholder, Value: seed}
}

// RemoteURL references an asset by absolute URL.
func RemoteURL(u string) MediaRef {
	return MediaRef{Kind: MediaRemote, Value: u}
}

// LocalHandle references an asset only meaningful on this device.
func LocalHandle(token string) MediaRef {
	return MediaRef{Kind: MediaLocal, Value: token}
}

// ParseMediaRef classifies user input. Empty input yields the zero MediaRef;
// anything that is not an http(s) URL is kept as a local handle, without its
// local: or blob: prefix.
func ParseMediaRef(s string) MediaRef {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return MediaRef{}
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return RemoteURL(s)
	case strings.HasPrefix(s, "local:"):
		return LocalHandle(strings.TrimPrefix(s, "local:"))
	case strings.HasPrefix(s, "blob:"):
		return LocalHandle(strings.TrimPrefix(s, "blob:"))
	default:
		return LocalHandle(s)
	}
}

// IsZero reports whether m references nothing.
func (m MediaRef) IsZero() bool {
	return m.Kind == "" && m.Value == ""
}

// Or returns m, or fallback when m is empty.
func (m MediaRef) Or(fallback MediaRef) MediaRef {
	if m.IsZero() {
		return fallback
	}
	return m
}

// Resolve renders m as a displayable string at the given size.
func (m MediaRef) Resolve(width, height int) string {
	switch m.Kind {
	case MediaPlaceholder:
		return fmt.Sprintf("%s/%s/%d/%d", placeholderBaseURL, url.PathEscape(m.Value), width, height)
	case MediaRemote:
		return m.Value
	case MediaLocal:
		return "local:" + m.Value
	default:
		return ""
	}
}

func (m MediaRef) String() string {
	return m.Resolve(600, 600)
}
