package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/newton/internal/config"
	"github.com/danmuck/newton/internal/logging"
)

const defaultPath = "newton.toml"

func main() {
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		if _, err := config.Load(*input); err != nil {
			fail(err)
		}
		logging.Infof("Validated config at %s", *input)
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		fail(err)
	}
	logging.Infof("Wrote config template to %s", *output)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "configgen: %v\n", err)
	os.Exit(1)
}
