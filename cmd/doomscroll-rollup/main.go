// Command doomscroll-rollup drives the rollup engine outside the API process
package main

import (
	"errors"
	"os"

	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"

	goflags "github.com/jessevdk/go-flags"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env")
	}
	logger.Init(logger.FromEnv())

	parser, _ := buildParser(os.Stdout)
	if _, err := parser.Parse(); err != nil {
		var ferr *goflags.Error
		if errors.As(err, &ferr) && ferr.Type == goflags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}
