package client

import "net/http"

// Config holds configuration shared by the streams of a video.
type Config struct {
	// HTTPClient is the client used for all stream requests. If nil,
	// http.DefaultClient is used. It may be shared across videos and
	// concurrent downloads; streams never mutate it.
	HTTPClient *http.Client
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
