package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"qythex.dev/core/dashboard"
	"qythex.dev/core/log"
)

func main() {
	cmd := &cli.Command{
		Name:  "qythex",
		Usage: "qythex dashboard backend",
		Commands: []*cli.Command{
			dashboard.Command(),
		},
	}

	ctx := context.Background()
	logger := log.New("qythex")
	ctx = log.IntoContext(ctx, logger)

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(-1)
	}
}
