package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"report-pad/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	settingsPath := flag.String("settings", "reportpad.yaml", "settings file path")
	logPath := flag.String("log", "reportpad.log", "log file path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: reportpad [flags] <note-file>")
		flag.PrintDefaults()
		return 2
	}

	// The TUI owns the terminal, so the log goes to a file.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reportpad: failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{
		SettingsPath: *settingsPath,
		NotePath:     flag.Arg(0),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "reportpad: %v\n", err)
		return 1
	}
	return 0
}
