package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/muneebk98/Maze-Adventures/internal/agent"
	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/internal/view"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

// Локальная игра в терминале: стрелки - шаг в соседнюю клетку,
// r - рестарт, n - следующий уровень, q/Esc - выход.
func main() {
	var (
		seed       int64
		configPath string
		withBot    bool
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.BoolVar(&withBot, "bot", false, "Let the bot play")
	flag.Parse()

	// Логи пишутся только в LOG_FILE, терминал занят картой.
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("LOG_FILE") == "" {
		logger.Log.SetOutput(io.Discard)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	game, err := engine.New(cfg, engine.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "game: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if withBot {
		go agent.NewBot("bot", game).Run(ctx)
	}
	_ = game.Start(0)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	interval := time.Second / time.Duration(cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !handleInput(game, ev) {
				return
			}
		case <-ticker.C:
			game.Step(interval)
			view.Render(screen, game.Layout(), game.Snapshot())
			screen.Show()
		}
	}
}

func handleInput(g *engine.Game, ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || key.Rune() == 'q' {
		return false
	}

	var dr, dc int
	switch key.Key() {
	case tcell.KeyUp:
		dr = -1
	case tcell.KeyDown:
		dr = 1
	case tcell.KeyLeft:
		dc = -1
	case tcell.KeyRight:
		dc = 1
	case tcell.KeyRune:
		switch key.Rune() {
		case 'r':
			g.Submit(engine.Command{Type: engine.CommandRestart, Source: "keyboard"})
		case 'n':
			g.Submit(engine.Command{Type: engine.CommandExit, Source: "keyboard"})
		}
		return true
	default:
		return true
	}

	l := g.Layout()
	row, col, ok := l.CellOf(g.Snapshot().Player)
	if !ok {
		return true
	}
	g.Submit(engine.Command{Type: engine.CommandMove, Target: l.CellCenter(row+dr, col+dc), Source: "keyboard"})
	return true
}
