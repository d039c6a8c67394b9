package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/aurora/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, cli.ErrCommandFailed) {
			fmt.Fprintf(os.Stderr, "aurora: %v\n", err)
		}
		os.Exit(1)
	}
}
