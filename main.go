package main

import (
	"flag"

	"go.uber.org/zap"

	"go-shorturl-relay/config"
	"go-shorturl-relay/server"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	cfg := config.Load()
	flag.IntVar(&cfg.ServerPort, "port", cfg.ServerPort, "Port the relay listens on")
	flag.StringVar(&cfg.RemoteBaseURL, "remote", cfg.RemoteBaseURL, "Base URL of the remote shortening service")
	flag.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", cfg.UpstreamTimeout, "Timeout for calls to the remote service (0 disables)")
	flag.Parse()

	logger.Info("Starting short URL relay...",
		zap.Int("port", cfg.ServerPort),
		zap.String("remote", cfg.RemoteBaseURL))
	if err := server.Run(logger, cfg); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
	logger.Info("Short URL relay stopped.")
}
