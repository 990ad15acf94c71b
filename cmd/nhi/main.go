package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nhi/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		if !errors.Is(err, cli.ErrInvalidValues) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
