package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func main() {
	os.Exit(runClient())
}

func runClient() int {
	cfg, err := loadConfig(configPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}
	logger, logCloser := setupLogger(cfg)
	defer logCloser.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create screen:", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init screen:", err)
		return 1
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	rt := newRuntime(cfg, screen, pumpEvents(screen), interrupt, logger)
	defer screen.Fini()
	defer rt.shutdown()

	logger.Info("starting", "host", cfg.host, "port", cfg.port)
	if !rt.connectionDialog() {
		return 0
	}
	rt.run()
	return 0
}
