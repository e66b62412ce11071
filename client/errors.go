package client

import "errors"

var (
	// ErrNoStreamURL indicates a format whose URL still requires signature
	// solving and cannot be fetched directly.
	ErrNoStreamURL = errors.New("stream has no fetchable url")
	// ErrStreamNotFound indicates no stream matched the requested itag.
	ErrStreamNotFound = errors.New("stream not found")
	// ErrNoStreams indicates the video exposes no usable streams.
	ErrNoStreams = errors.New("no usable streams")
)
