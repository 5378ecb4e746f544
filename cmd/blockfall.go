package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/blockfall/internal/config"
	game_log "github.com/ingyamilmolinar/blockfall/internal/log"
	"github.com/ingyamilmolinar/blockfall/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := game_log.New(os.Stderr, game_log.LevelFromString(cfg.LogLevel))
	logger.Infof("[MAIN] Starting: %+v", cfg)

	g := ui.New(cfg, logger)

	ebiten.SetWindowSize(360, 560)
	ebiten.SetWindowTitle("Blockfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
