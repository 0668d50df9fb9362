package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quotedeck/internal/config"
	"quotedeck/internal/coord"
	"quotedeck/internal/logging"
	"quotedeck/internal/prefs"
	"quotedeck/internal/store"
	"quotedeck/internal/ui"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	if err := logging.Init(); err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(config.DataDir(), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Open shared store (also read by quotedeck-widget and qdctl)
	st, err := store.Open(config.DBPath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	sets, err := prefs.Load(st)
	if err != nil {
		log.Fatalf("Failed to load preference sets: %v", err)
	}

	eng := newEngine(st, cfg, sets)
	app := ui.NewApp(eng.uiConfig())

	// Create program
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Create and start coordinator: initial library load plus live reload
	coordinator := coord.NewCoordinator(cfg.LibraryPath, st)
	coordinator.Start(ctx, program)

	logging.Info("quotedeck starting", "library", cfg.LibraryPath, "launch", cfg.Launch)

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}

	// Graceful shutdown
	cancel()
	coordinator.Wait()
	eng.shutdown()
}
