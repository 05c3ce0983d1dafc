package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/pet-reminder/internal/cli"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx)
}
