package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mtgcanvas/scryfetch/pkg/client"
)

// Exit codes, kept stable for scripting:
//
//	0  success, even when some names stay unresolved
//	2  input or configuration problems
//	3  network or provider failure after retries
const (
	exitOK        = 0
	exitInput     = 2
	exitTransport = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrRetryExhausted),
		errors.Is(err, client.ErrContextCancelled),
		errors.As(err, &apiErr):
		return exitTransport
	default:
		return exitInput
	}
}
