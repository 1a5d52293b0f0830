package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/screenlocator/cli"
	"github.com/mobile-next/screenlocator/commands"
)

func main() {
	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		// release the recognizer and agent connection
		if err := commands.Shutdown(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(0)
	case err := <-done:
		_ = commands.Shutdown()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
