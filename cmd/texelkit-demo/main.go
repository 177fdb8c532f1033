// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelkit-demo/main.go
// Summary: Button pad demo hosted on a tcell terminal screen.
// Usage: Run `texelkit-demo`; Ctrl+C quits, Tab cycles focus.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/adapter"
	"github.com/framegrace/texelkit/apps/buttonpad"
	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelkit-demo", flag.ContinueOnError)
	noColors := fs.Bool("no-terminal-colors", false, "Skip querying the terminal for its default colors")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	logFile, err := setupLogging()
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	if err := config.Err(); err != nil {
		log.Printf("config unavailable, running on defaults: %v", err)
	}

	// Ask the terminal for its default colors before tcell owns the
	// tty; the reply seeds the palette so unthemed surfaces blend in.
	if !*noColors && config.System().GetBool("input", "query_terminal_colors", true) {
		if fg, bg, err := theme.QueryTerminalColors(); err == nil {
			theme.Get().SeedTerminal(fg, bg)
		} else {
			log.Printf("terminal color query failed: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	ui := core.NewUIManager()
	host := adapter.NewHost(adapter.NewTcellScreenDriver(screen), ui)

	pad, err := buttonpad.New(ui)
	if err != nil {
		return fmt.Errorf("build pad: %w", err)
	}
	defer pad.Close()

	host.OnResize = pad.Layout

	return host.Run()
}

func setupLogging() (*os.File, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(configDir, "texelkit", "logs")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, err
	}
	logPath := filepath.Join(logDir, "texelkit-demo.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
