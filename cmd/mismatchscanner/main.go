package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MismatchScanner/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.New("error", "text").Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
