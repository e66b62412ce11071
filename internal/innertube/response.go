// Package innertube models the subset of the origin's player response
// this library consumes: the declared stream formats and the video
// details. Retrieval of the document is left to the caller; this package
// only decodes it.
package innertube

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PlayerResponse is the top-level player payload.
type PlayerResponse struct {
	StreamingData StreamingData `json:"streamingData"`
	VideoDetails  VideoDetails  `json:"videoDetails"`
}

type StreamingData struct {
	ExpiresInSeconds string   `json:"expiresInSeconds"`
	Formats          []Format `json:"formats"`
	AdaptiveFormats  []Format `json:"adaptiveFormats"`
}

// Format mirrors one raw format record as declared by the origin. Numeric
// fields the origin encodes as decimal strings stay strings here; the
// accessor methods normalize them, treating malformed values as zero.
type Format struct {
	Itag             int    `json:"itag"`
	URL              string `json:"url"`
	MimeType         string `json:"mimeType"`
	Bitrate          int    `json:"bitrate"`
	AverageBitrate   int    `json:"averageBitrate"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	FPS              int    `json:"fps"`
	Quality          string `json:"quality"`
	QualityLabel     string `json:"qualityLabel"`
	AudioQuality     string `json:"audioQuality"`
	AudioSampleRate  string `json:"audioSampleRate"`
	AudioChannels    int    `json:"audioChannels"`
	ApproxDurationMs string `json:"approxDurationMs"`
	LastModified     string `json:"lastModified"`
	ContentLength    string `json:"contentLength"`
	ProjectionType   string `json:"projectionType"`
	InitRange        *Range `json:"initRange"`
	IndexRange       *Range `json:"indexRange"`
	SignatureCipher  string `json:"signatureCipher"`
}

type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ContentLengthBytes returns the declared content length in bytes, or 0
// when the field is absent or malformed.
func (f *Format) ContentLengthBytes() int64 {
	return parseInt64(f.ContentLength)
}

// DurationMs returns the declared approximate duration in milliseconds.
func (f *Format) DurationMs() int64 {
	return parseInt64(f.ApproxDurationMs)
}

// SampleRate returns the declared audio sample rate, or 0.
func (f *Format) SampleRate() int64 {
	return parseInt64(f.AudioSampleRate)
}

// Ciphered reports whether the format still requires signature solving
// before its URL is fetchable.
func (f *Format) Ciphered() bool {
	return f.URL == "" && f.SignatureCipher != ""
}

type VideoDetails struct {
	VideoID          string     `json:"videoId"`
	Title            string     `json:"title"`
	Author           string     `json:"author"`
	ChannelID        string     `json:"channelId"`
	LengthSeconds    string     `json:"lengthSeconds"`
	ViewCount        string     `json:"viewCount"`
	ShortDescription string     `json:"shortDescription"`
	Keywords         []string   `json:"keywords"`
	IsLiveContent    bool       `json:"isLiveContent"`
	IsPrivate        bool       `json:"isPrivate"`
	Thumbnail        Thumbnails `json:"thumbnail"`
}

type Thumbnails struct {
	Thumbnails []Thumbnail `json:"thumbnails"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Length returns the video duration in seconds.
func (v *VideoDetails) Length() int64 {
	return parseInt64(v.LengthSeconds)
}

// Views returns the declared view count.
func (v *VideoDetails) Views() int64 {
	return parseInt64(v.ViewCount)
}

// DecodePlayerResponse parses a raw player response document.
func DecodePlayerResponse(data []byte) (*PlayerResponse, error) {
	var resp PlayerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &resp, nil
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
