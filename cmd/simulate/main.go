package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/cognicore/minemind/pkg/minemind"
	"github.com/cognicore/minemind/pkg/minemind/board"
	"github.com/cognicore/minemind/pkg/minemind/config"
	"github.com/cognicore/minemind/pkg/minemind/store"
	"github.com/cognicore/minemind/pkg/minemind/store/memstore"
	"github.com/cognicore/minemind/pkg/minemind/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (overrides other flags)")
		games      = flag.Int("games", 100, "Number of games to play")
		height     = flag.Int("height", 8, "Board height")
		width      = flag.Int("width", 8, "Board width")
		mines      = flag.Int("mines", 8, "Number of mines")
		seed       = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		dbPath     = flag.String("db", "", "SQLite results database (optional)")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.Simulation.Games = *games
	cfg.Game = config.Game{Height: *height, Width: *width, Mines: *mines}
	cfg.Simulation.Seed = *seed
	cfg.Store.Path = *dbPath

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = *loaded
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}

	ctx := context.Background()

	var results store.Store
	if cfg.Store.Path != "" {
		s, err := sqlite.Open(ctx, cfg.Store.Path)
		if err != nil {
			log.Fatal(err)
		}
		results = s
	} else {
		results = memstore.New()
	}
	defer results.Close()

	fmt.Printf("Simulating %d games of %dx%d with %d mines (seed %d)\n",
		cfg.Simulation.Games, cfg.Game.Height, cfg.Game.Width, cfg.Game.Mines, cfg.Simulation.Seed)

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	for i := 0; i < cfg.Simulation.Games; i++ {
		// Every game owns an independent board and agent.
		b, err := board.New(cfg.Game.Height, cfg.Game.Width, cfg.Game.Mines, rng)
		if err != nil {
			log.Fatal(err)
		}
		session, err := minemind.New(minemind.Options{Board: b, Store: results, Rand: rng})
		if err != nil {
			log.Fatal(err)
		}
		if _, err := session.Play(ctx); err != nil {
			log.Fatal(err)
		}

		if (i+1)%100 == 0 {
			fmt.Printf("  %d games done\n", i+1)
		}
	}

	summary, err := results.Summary(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Printf("Games:       %d\n", summary.Games)
	fmt.Printf("Wins:        %d (%.1f%%)\n", summary.Wins, summary.WinRate*100)
	fmt.Printf("Avg moves:   %.1f\n", summary.AvgMoves)
	fmt.Printf("Avg guesses: %.1f\n", summary.AvgGuesses)
}
