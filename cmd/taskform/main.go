package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/logging"
	"github.com/sandeepkv93/taskform/internal/storage"
	"github.com/sandeepkv93/taskform/internal/store"
	"github.com/sandeepkv93/taskform/internal/update"
	"github.com/sandeepkv93/taskform/internal/views"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskform failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := update.LoadRuntimeConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	board := views.NewBoard()
	ed := editor.New(store.New(repo, store.WithLogger(logger)), board, editor.WithLogger(logger))
	if err := ed.Load(context.Background()); err != nil {
		return err
	}
	logger.Info("taskform started", "db", cfg.DBPath, "tasks", board.Len())

	program := tea.NewProgram(update.NewModel(ed, board, cfg, logger))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
