package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danii/rustube/internal/downloader"
	"github.com/danii/rustube/internal/formats"
	"github.com/danii/rustube/internal/innertube"
	"github.com/danii/rustube/internal/logging"

	"go.uber.org/zap"
)

// DefaultExtension is the container suffix used for derived file names.
// It is a fixed convention, not derived from the stream's MIME type.
const DefaultExtension = ".mp4"

// Stream describes one fetchable rendition of a video: its URL, its
// derived track composition, and the declared metadata callers select on.
// A Stream is immutable after construction. Download calls hold no state
// on the Stream, so independent concurrent downloads of the same Stream
// are safe; each call owns its own request and destination file.
type Stream struct {
	Itag     int
	VideoID  string
	URL      string
	MimeType string
	Codecs   []string

	// Derived track composition. VideoCodec and AudioCodec are empty when
	// the stream carries no such track per its declaration.
	VideoCodec    string
	AudioCodec    string
	IsProgressive bool
	HasVideo      bool
	HasAudio      bool

	// Declared metadata, carried through for stream selection.
	Bitrate        int
	AverageBitrate int
	Width          int
	Height         int
	FPS            int
	Quality        string
	QualityLabel   string
	AudioQuality   string
	AudioChannels  int
	DurationMs     int64

	// ContentLengthHint is the length declared by the metadata document,
	// 0 when absent. It may be stale; ContentLength falls back to a HEAD
	// request when the hint is missing.
	ContentLengthHint int64

	client *http.Client
}

// NewStream builds a Stream from a raw format record, classifying its
// track composition once. The format's URL must already be fetchable;
// ciphered-only formats are rejected with ErrNoStreamURL.
func NewStream(raw innertube.Format, details *innertube.VideoDetails, cfg Config) (*Stream, error) {
	if raw.URL == "" {
		return nil, ErrNoStreamURL
	}
	mediaType, codecs, err := formats.ParseMimeType(raw.MimeType)
	if err != nil {
		return nil, err
	}
	cls, err := formats.Classify(mediaType, codecs)
	if err != nil {
		return nil, fmt.Errorf("itag %d: %w", raw.Itag, err)
	}

	var videoID string
	if details != nil {
		videoID = details.VideoID
	}
	return &Stream{
		Itag:     raw.Itag,
		VideoID:  videoID,
		URL:      raw.URL,
		MimeType: raw.MimeType,
		Codecs:   codecs,

		VideoCodec:    cls.VideoCodec,
		AudioCodec:    cls.AudioCodec,
		IsProgressive: cls.Progressive,
		HasVideo:      cls.HasVideo,
		HasAudio:      cls.HasAudio,

		Bitrate:        raw.Bitrate,
		AverageBitrate: raw.AverageBitrate,
		Width:          raw.Width,
		Height:         raw.Height,
		FPS:            raw.FPS,
		Quality:        raw.Quality,
		QualityLabel:   raw.QualityLabel,
		AudioQuality:   raw.AudioQuality,
		AudioChannels:  raw.AudioChannels,
		DurationMs:     raw.DurationMs(),

		ContentLengthHint: raw.ContentLengthBytes(),

		client: cfg.httpClient(),
	}, nil
}

// IsAdaptive reports whether the stream is a single-track rendition meant
// for client-side muxing with a matching track.
func (s *Stream) IsAdaptive() bool {
	return !s.IsProgressive
}

// Download writes the stream to <videoID>.mp4 in the working directory
// and returns the path.
func (s *Stream) Download(ctx context.Context) (string, error) {
	path := s.VideoID + DefaultExtension
	if err := s.DownloadTo(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// DownloadToDir writes the stream to <videoID>.mp4 under dir and returns
// the path.
func (s *Stream) DownloadToDir(ctx context.Context, dir string) (string, error) {
	path := filepath.Join(dir, s.VideoID+DefaultExtension)
	if err := s.DownloadTo(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// DownloadTo writes the stream to path, creating or truncating the file.
// A 404 on the plain URL means the origin only serves this stream as a
// numbered segment sequence, and the download switches to that protocol
// on the same file. On any other failure, in either mode, the partially
// written file is removed so callers never observe a corrupt
// completed-looking file.
func (s *Stream) DownloadTo(ctx context.Context, path string) error {
	ctx = logging.NewContext(ctx, zap.String("video_id", s.VideoID), zap.Int("itag", s.Itag))
	log := logging.FromContext(ctx)
	log.Debug("downloading stream", zap.String("path", path))

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = downloader.FetchToWriter(ctx, s.client, s.URL, file)
	if downloader.IsStatus(err, http.StatusNotFound) {
		seq := downloader.NewSequenceDownloader(s.client, s.URL)
		_, err = seq.Download(ctx, file)
	}
	if err != nil {
		log.Error("stream download failed", zap.Error(err))
		file.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		return err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	log.Info("stream downloaded", zap.String("path", path))
	return nil
}

// ContentLength returns the stream's size in bytes, preferring the length
// declared in the metadata document and falling back to a HEAD request.
// The result is not cached; callers may cache it themselves.
func (s *Stream) ContentLength(ctx context.Context) (int64, error) {
	if s.ContentLengthHint > 0 {
		return s.ContentLengthHint, nil
	}
	return downloader.ResolveContentLength(ctx, s.client, s.URL)
}
