package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/danii/rustube/client"
	"github.com/danii/rustube/internal/innertube"
	"github.com/danii/rustube/internal/logging"
)

const (
	modeEnvProduction = "prod"
	modeEnvDebug      = "debug"
)

func main() {
	viper.SetEnvPrefix("RUSTUBE")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "failed to read config (used file: %q): %v\n", viper.ConfigFileUsed(), err)
			os.Exit(1)
		}
	}

	var logCfg zap.Config
	switch mode := viper.GetString("MODE"); mode {
	case modeEnvProduction:
		logCfg = zap.NewProductionConfig()
	case modeEnvDebug, "":
		logCfg = zap.NewDevelopmentConfig()
	default:
		fmt.Fprintf(os.Stderr, "unknown MODE %q, use %q or %q\n", mode, modeEnvProduction, modeEnvDebug)
		os.Exit(1)
	}
	logger, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logging.SetLogger(logger)
	log := logger.Sugar()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: rustube <player-response.json>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read player response: %v", err)
	}
	resp, err := innertube.DecodePlayerResponse(data)
	if err != nil {
		log.Fatalf("failed to decode player response: %v", err)
	}

	video, err := client.NewVideo(resp, client.Config{})
	if err != nil {
		log.Fatalf("failed to build video: %v", err)
	}
	log.Infof("video %s (%q) exposes %d fetchable streams", video.Details.VideoID, video.Details.Title, len(video.Streams()))

	var stream *client.Stream
	if itag := viper.GetInt("ITAG"); itag > 0 {
		stream, err = video.StreamByItag(itag)
	} else {
		stream, err = video.BestProgressive()
	}
	if err != nil {
		log.Fatalf("stream selection failed: %v", err)
	}
	log.Infof("selected itag=%d mime=%q video_codec=%q audio_codec=%q", stream.Itag, stream.MimeType, stream.VideoCodec, stream.AudioCodec)

	ctx := context.Background()
	if timeout := viper.GetDuration("DOWNLOAD_TIMEOUT"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if length, err := stream.ContentLength(ctx); err == nil {
		log.Infof("content length: %d bytes", length)
	}

	var path string
	if dir := viper.GetString("OUTPUT_DIR"); dir != "" {
		path, err = stream.DownloadToDir(ctx, dir)
	} else {
		path, err = stream.Download(ctx)
	}
	if err != nil {
		log.Fatalf("download failed: %v", err)
	}
	log.Infof("downloaded to %s", path)
}
