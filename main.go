package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cantwait/internal/clock"
	"cantwait/internal/errors"
	"cantwait/internal/logging"
)

const appVersion = "0.2.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logging.Close() }()

	a := &app{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		clock:  clock.RealClock{},
	}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		// Validation messages have already been printed with the report.
		if !errors.Is(err, errors.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
