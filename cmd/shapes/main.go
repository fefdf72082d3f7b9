package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/window"
)

func main() {
	os.Exit(run())
}

func run() int {
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	logger := common.Logger()

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle("WGPU Application"),
		window.WithWidth(800),
		window.WithHeight(600),
	)
	defer func() {
		if err := win.Close(); err != nil {
			logger.Error("closing window", "error", err)
		}
	}()

	// ── Render state ────────────────────────────────────────────────────
	state, err := renderer.NewState(context.Background(), win)
	if err != nil {
		logger.Error("creating render state", "error", err)
		return 1
	}
	defer state.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithState(state),
		engine.WithProfiling(false),
	)
	if err := eng.Run(); err != nil {
		logger.Error("running engine", "error", err)
		return 1
	}

	logger.Info("exiting")
	return 0
}
