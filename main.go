package main

import (
	"os"

	"github.com/firefly-engineering/genctl/cmd"
	"github.com/firefly-engineering/genctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
