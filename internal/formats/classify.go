// Package formats derives the track composition of a media format from
// its declared MIME type and codec list. Everything here is pure: the
// functions see only already-parsed metadata and perform no I/O.
package formats

import (
	"fmt"
	"mime"
	"strings"

	"github.com/danii/rustube/internal/types"
)

// Classification is the derived track composition of one format.
// VideoCodec and AudioCodec are empty when the format carries no such
// track per its declaration.
type Classification struct {
	VideoCodec  string
	AudioCodec  string
	Progressive bool
	HasVideo    bool
	HasAudio    bool
}

// ParseMimeType splits a declaration like
//
//	video/mp4; codecs="avc1.4d401f, mp4a.40.2"
//
// into its media type and ordered codec tokens. A missing or empty codecs
// parameter yields a nil slice.
func ParseMimeType(decl string) (string, []string, error) {
	mediaType, params, err := mime.ParseMediaType(decl)
	if err != nil {
		return "", nil, fmt.Errorf("parse mime type %q: %w", decl, err)
	}
	raw := strings.TrimSpace(params["codecs"])
	if raw == "" {
		return mediaType, nil, nil
	}
	parts := strings.Split(raw, ",")
	codecs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codecs = append(codecs, p)
		}
	}
	return mediaType, codecs, nil
}

// IsAdaptive reports whether the codec list declares a single-track
// format. Combined audio+video formats declare exactly two codecs and
// single-track formats exactly one; the odd/even parity generalizes to the
// historical formats that declare more. The convention is origin-specific
// and must not be "fixed".
func IsAdaptive(codecs []string) bool {
	return len(codecs)%2 != 0
}

// IsProgressive reports whether the codec list declares a combined
// audio+video format.
func IsProgressive(codecs []string) bool {
	return !IsAdaptive(codecs)
}

// IncludesVideoTrack reports whether the format carries a video track:
// every progressive format does, and so does any format whose top-level
// MIME type is "video".
func IncludesVideoTrack(codecs []string, mediaType string) bool {
	return IsProgressive(codecs) || topLevelType(mediaType) == "video"
}

// IncludesAudioTrack is the audio counterpart of IncludesVideoTrack.
func IncludesAudioTrack(codecs []string, mediaType string) bool {
	return IsProgressive(codecs) || topLevelType(mediaType) == "audio"
}

func topLevelType(mediaType string) string {
	if i := strings.IndexByte(mediaType, '/'); i >= 0 {
		return mediaType[:i]
	}
	return mediaType
}

// Classify derives the full track composition of a format. The only
// failure is a progressive declaration whose codec count is not exactly
// two; everything else, including a format carrying neither recognizable
// track, classifies cleanly and is left for the caller to accept or
// reject.
func Classify(mediaType string, codecs []string) (Classification, error) {
	c := Classification{
		Progressive: IsProgressive(codecs),
		HasVideo:    IncludesVideoTrack(codecs, mediaType),
		HasAudio:    IncludesAudioTrack(codecs, mediaType),
	}
	switch {
	case c.Progressive:
		if len(codecs) != 2 {
			return Classification{}, &types.UnexpectedResponseError{
				Reason: fmt.Sprintf("expected 2 codecs for a progressive format, got %d (%q)", len(codecs), codecs),
			}
		}
		c.VideoCodec = codecs[0]
		c.AudioCodec = codecs[1]
	case c.HasVideo:
		c.VideoCodec = codecs[0]
	case c.HasAudio:
		c.AudioCodec = codecs[0]
	}
	return c, nil
}
