// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelcine/main.go
// Summary: Entry point for the title detail browser.
// Usage: texelcine [-title id] [-db path] [-dump]

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/framegrace/texelcine/apps/titledetail"
	"github.com/framegrace/texelcine/config"
	"github.com/framegrace/texelcine/internal/devshell"
	"github.com/framegrace/texelcine/texel"
)

func main() {
	titleID := flag.String("title", "", "id of the title to open (default: config defaultTitle)")
	dbPath := flag.String("db", "", "catalog database path (default: config catalog.db_path)")
	dump := flag.Bool("dump", false, "render one frame as text to stdout and exit")
	logPath := flag.String("log", "", "log file (default: <config>/texelcine/logs/texelcine.log)")
	flag.Parse()

	if !*dump {
		// Log lines would tear the full-screen UI.
		file, err := setupLogging(*logPath)
		if err != nil {
			log.Fatalf("texelcine: logging: %v", err)
		}
		defer file.Close()
	}

	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}

	build := func(args []string) (texel.App, error) {
		return titledetail.Open(*titleID, *dbPath)
	}

	if *dump {
		if err := dumpFrame(build); err != nil {
			log.Fatalf("texelcine: %v", err)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texelcine: stdout is not a terminal (use -dump)")
		os.Exit(1)
	}
	if err := devshell.Run(build, flag.Args()); err != nil {
		log.Printf("texelcine: %v", err)
		fmt.Fprintf(os.Stderr, "texelcine: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(path string) (*os.File, error) {
	if path == "" {
		p, err := config.DataPath(filepath.Join("logs", "texelcine.log"))
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}

// dumpFrame renders at the terminal size when stdout is a terminal and at
// 80x24 otherwise.
func dumpFrame(build devshell.Builder) error {
	cols, rows := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			cols, rows = w, h
		}
	}
	app, err := build(nil)
	if err != nil {
		return err
	}
	defer app.Stop()
	for _, line := range devshell.Snapshot(app, cols, rows) {
		fmt.Println(line)
	}
	return nil
}
