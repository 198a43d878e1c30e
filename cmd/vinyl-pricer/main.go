package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vinyl-pricer/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Stdin, os.Stdout, os.Stderr)
	interrupted := ctx.Err() != nil
	stop()

	if interrupted {
		os.Exit(130)
	}
	if err != nil {
		os.Exit(1)
	}
}
