package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		// Interrupted run; the summary already said so.
		os.Exit(130)
	}
	fmt.Fprintln(os.Stderr, "sweeper:", err)
	os.Exit(1)
}
