package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	coverletter "github.com/alnah/go-coverletter"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS for containers. Error ignored: maxprocs.Set
	// only fails on an invalid GOMAXPROCS env value, in which case the
	// Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	// Ctrl-C cancels the conversion wait; the remote job is abandoned.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], defaultFactory, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCodeFor(err))
}

// defaultFactory builds the real generator; tests substitute stubs.
func defaultFactory(opts ...coverletter.Option) (generator, error) {
	return coverletter.New(opts...)
}
