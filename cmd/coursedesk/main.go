package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coursedesk/coursedesk/cmd/coursedesk/cmd"
)

func main() {
	// Every API call inherits this context, so an interrupt cancels any
	// in-flight request instead of leaving it to finish against a view
	// that no longer exists.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
