package client

import (
	"errors"

	"github.com/danii/rustube/internal/innertube"
)

// Video groups the fetchable streams of one video together with its
// details.
type Video struct {
	Details innertube.VideoDetails

	streams []*Stream
}

// NewVideo materializes streams from a decoded player response. Formats
// without a fetchable URL (still ciphered) are skipped; a classification
// failure on any remaining format aborts.
func NewVideo(resp *innertube.PlayerResponse, cfg Config) (*Video, error) {
	raw := make([]innertube.Format, 0, len(resp.StreamingData.Formats)+len(resp.StreamingData.AdaptiveFormats))
	raw = append(raw, resp.StreamingData.Formats...)
	raw = append(raw, resp.StreamingData.AdaptiveFormats...)

	streams := make([]*Stream, 0, len(raw))
	for _, f := range raw {
		s, err := NewStream(f, &resp.VideoDetails, cfg)
		if errors.Is(err, ErrNoStreamURL) {
			continue
		}
		if err != nil {
			return nil, err
		}
		streams = append(streams, s)
	}
	return &Video{Details: resp.VideoDetails, streams: streams}, nil
}

// Streams returns all fetchable streams in declaration order.
func (v *Video) Streams() []*Stream {
	return v.streams
}

// StreamByItag returns the stream with the given itag.
func (v *Video) StreamByItag(itag int) (*Stream, error) {
	for _, s := range v.streams {
		if s.Itag == itag {
			return s, nil
		}
	}
	return nil, ErrStreamNotFound
}

// BestProgressive returns the combined audio+video stream with the
// highest bitrate, or ErrNoStreams when the video has none.
func (v *Video) BestProgressive() (*Stream, error) {
	var best *Stream
	for _, s := range v.streams {
		if !s.IsProgressive {
			continue
		}
		if best == nil || s.Bitrate > best.Bitrate {
			best = s
		}
	}
	if best == nil {
		return nil, ErrNoStreams
	}
	return best, nil
}
