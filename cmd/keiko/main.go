package main

import (
	"fmt"
	"os"
)

// Exit codes for different failure modes.
const (
	ExitSuccess     = 0 // Evaluation completed and emitted a metric
	ExitConfigError = 2 // Configuration or runtime error; no usable metric
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitConfigError)
	}
}
