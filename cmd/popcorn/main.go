// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command popcorn is a terminal client for browsing a movie catalog and
// keeping a rated list of watched movies for the length of a session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/jaycherian/go-popcorn/internal/cloud"
	"github.com/jaycherian/go-popcorn/internal/core/session"
	"github.com/jaycherian/go-popcorn/internal/telemetry"
)

func main() {
	demo := flag.Bool("demo", false, "use the built-in catalog instead of OMDb")
	plain := flag.Bool("plain", false, "read line commands instead of running the full-screen UI")
	flag.Parse()

	config, err := GetConfig(afero.NewOsFs())
	if err != nil {
		log.Fatal(err)
	}

	closeLog, err := telemetry.SetupLogging(config)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = closeLog() }()
	slog.Info("Logging initialized", "level", config.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	defer func() {
		// Give the exporters 5 seconds to flush.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("Telemetry shutdown failed", "error", err)
		}
	}()
	slog.Info("Tracing initialized", "exporter", config.Telemetry.Exporter)

	if *plain {
		runPlain(ctx, stop, config, cloud.CatalogMode(*demo))
	} else {
		runUI(ctx, stop, config, cloud.CatalogMode(*demo))
	}
	slog.Info("popcorn exiting")
}

func runUI(ctx context.Context, stop context.CancelFunc, config *cloud.Config, mode cloud.CatalogMode) {
	ui := NewUI()
	app, err := InitializeApp(config, mode, ui)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		log.Fatal(err)
	}
	defer app.Close()

	program := tea.NewProgram(newBrowser(app.Session.Dispatch, app.Session.Snapshot()), tea.WithAltScreen())
	ui.Attach(program)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stop()
		if _, err := program.Run(); err != nil {
			slog.Error("UI failed", "error", err)
		}
	}()

	if err := app.Session.Run(ctx); err != nil {
		slog.Error("Session failed", "error", err)
	}
	program.Quit()
	<-done
}

func runPlain(ctx context.Context, stop context.CancelFunc, config *cloud.Config, mode cloud.CatalogMode) {
	terminal := NewTerminal(os.Stdout)
	app, err := InitializeApp(config, mode, terminal)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		log.Fatal(err)
	}
	defer app.Close()

	terminal.Help()
	go readCommands(os.Stdin, app.Session, terminal, stop)

	if err := app.Session.Run(ctx); err != nil {
		slog.Error("Session failed", "error", err)
	}
}

// readCommands feeds input lines to the session until quit or end of input.
func readCommands(in io.Reader, s *session.Session, terminal *Terminal, stop context.CancelFunc) {
	defer stop()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		intent, err := ParseCommand(scanner.Text(), s.Snapshot())
		switch {
		case errors.Is(err, ErrQuit):
			return
		case errors.Is(err, ErrHelp):
			terminal.Help()
		case err != nil:
			terminal.Notice("⛔ %v", err)
		case intent != nil:
			s.Dispatch(intent)
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read input", "error", err)
	}
}
