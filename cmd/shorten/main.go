// Command shorten submits a URL to the short URL relay and prints the resulting link.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"go-shorturl-relay/config"
	"go-shorturl-relay/controller"
	"go-shorturl-relay/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("shorten", flag.ContinueOnError)
	fs.SetOutput(stderr)
	originalURL := fs.String("url", "", "URL to shorten")
	expiry := fs.String("expiry", "", "Days until the short link expires (0-365)")
	fs.StringVar(&cfg.RelayBaseURL, "relay", cfg.RelayBaseURL, "Base URL of the relay")
	fs.StringVar(&cfg.RemoteBaseURL, "remote", cfg.RemoteBaseURL, "Base URL of the remote shortening service, used for the link")
	fs.DurationVar(&cfg.TransportTimeout, "timeout", cfg.TransportTimeout, "Timeout for the relay call (0 disables)")
	verbose := fs.Bool("v", false, "Log submission steps")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
			defer logger.Sync()
		}
	}

	ctrl, err := controller.New(controller.NewRelayClient(cfg.RelayBaseURL, cfg.TransportTimeout), cfg.RemoteBaseURL, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	_, err = ctrl.Submit(context.Background(), types.SubmissionRequest{OriginalURL: *originalURL, ExpiryInDays: *expiry})
	if err != nil {
		var serr *controller.SubmissionError
		if errors.As(err, &serr) {
			fmt.Fprintln(stderr, serr.Message)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	fmt.Fprintln(stdout, ctrl.ShortLink())
	return 0
}
