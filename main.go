package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/lox/cli"
	"github.com/ardnew/lox/cli/cmd"
	"github.com/ardnew/lox/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err == nil {
		return
	}

	var exitErr *cmd.ExitError
	if !errors.As(err, &exitErr) {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}

	if exitErr.Err != nil {
		log.Error("run failed", slog.Any("error", exitErr.Err))
	}

	os.Exit(exitErr.Code)
}
