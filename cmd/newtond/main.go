package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/newton/internal/config"
	"github.com/danmuck/newton/internal/logging"
	"github.com/danmuck/newton/internal/server"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "TOML config path (defaults when empty)")
	flag.Parse()

	logging.ConfigureRuntime()
	gin.SetMode(gin.ReleaseMode)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "newtond: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := server.New(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "newtond: %v\n", err)
		os.Exit(1)
	}
}
