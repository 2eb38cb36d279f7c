package main

import (
	"context"
	"errors"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// compare already printed the relation; only the exit status is left.
		if errors.Is(err, errUnrelated) {
			os.Exit(1)
		}

		exitOnError(err)
	}
}
