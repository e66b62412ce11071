package innertube

import "testing"

const samplePlayerResponse = `{
	"streamingData": {
		"expiresInSeconds": "21540",
		"formats": [
			{
				"itag": 18,
				"url": "https://example.com/v.mp4",
				"mimeType": "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"",
				"bitrate": 500000,
				"width": 640,
				"height": 360,
				"contentLength": "3792299",
				"approxDurationMs": "213341",
				"quality": "medium",
				"qualityLabel": "360p",
				"audioSampleRate": "44100",
				"audioChannels": 2
			}
		],
		"adaptiveFormats": [
			{
				"itag": 251,
				"mimeType": "audio/webm; codecs=\"opus\"",
				"signatureCipher": "s=enc&sp=sig&url=https%3A%2F%2Fexample.com%2Fa.webm",
				"contentLength": "bad",
				"approxDurationMs": ""
			}
		]
	},
	"videoDetails": {
		"videoId": "dQw4w9WgXcQ",
		"title": "a title",
		"author": "an author",
		"channelId": "UC123",
		"lengthSeconds": "213",
		"viewCount": "1000000",
		"keywords": ["one", "two"],
		"isLiveContent": false,
		"thumbnail": {"thumbnails": [{"url": "https://example.com/t.jpg", "width": 120, "height": 90}]}
	}
}`

func TestDecodePlayerResponse(t *testing.T) {
	resp, err := DecodePlayerResponse([]byte(samplePlayerResponse))
	if err != nil {
		t.Fatalf("DecodePlayerResponse() error = %v", err)
	}

	if got := len(resp.StreamingData.Formats); got != 1 {
		t.Fatalf("formats len = %d, want 1", got)
	}
	f := resp.StreamingData.Formats[0]
	if f.Itag != 18 || f.URL == "" {
		t.Fatalf("format mismatch: %+v", f)
	}
	if f.ContentLengthBytes() != 3792299 {
		t.Fatalf("content length = %d", f.ContentLengthBytes())
	}
	if f.DurationMs() != 213341 {
		t.Fatalf("duration = %d", f.DurationMs())
	}
	if f.SampleRate() != 44100 {
		t.Fatalf("sample rate = %d", f.SampleRate())
	}
	if f.Ciphered() {
		t.Fatal("format with a url must not be ciphered")
	}

	a := resp.StreamingData.AdaptiveFormats[0]
	if !a.Ciphered() {
		t.Fatal("url-less format with a signatureCipher must be ciphered")
	}
	if a.ContentLengthBytes() != 0 || a.DurationMs() != 0 {
		t.Fatalf("malformed numerics must normalize to zero: %d, %d", a.ContentLengthBytes(), a.DurationMs())
	}

	d := resp.VideoDetails
	if d.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("video id = %q", d.VideoID)
	}
	if d.Length() != 213 || d.Views() != 1000000 {
		t.Fatalf("length=%d views=%d", d.Length(), d.Views())
	}
	if len(d.Thumbnail.Thumbnails) != 1 || d.Thumbnail.Thumbnails[0].Width != 120 {
		t.Fatalf("thumbnails = %+v", d.Thumbnail)
	}
}

func TestDecodePlayerResponse_Invalid(t *testing.T) {
	if _, err := DecodePlayerResponse([]byte("{not json")); err == nil {
		t.Fatal("DecodePlayerResponse() error = nil, want non-nil")
	}
}
