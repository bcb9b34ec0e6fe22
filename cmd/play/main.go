package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/cognicore/minemind/internal/render"
	"github.com/cognicore/minemind/pkg/minemind"
	"github.com/cognicore/minemind/pkg/minemind/board"
)

func main() {
	var (
		height = flag.Int("height", 8, "Board height")
		width  = flag.Int("width", 8, "Board width")
		mines  = flag.Int("mines", 8, "Number of mines")
		seed   = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		show   = flag.Bool("show", false, "Print the board after every move")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	b, err := board.New(*height, *width, *mines, rng)
	if err != nil {
		log.Fatal(err)
	}

	session, err := minemind.New(minemind.Options{Board: b, Rand: rng})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Playing %dx%d with %d mines (seed %d)\n\n", *height, *width, *mines, *seed)

	for !session.Done() {
		move, ok, err := session.Step()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}

		kind := "safe"
		if move.Kind == minemind.MoveGuess {
			kind = "guess"
		}
		if move.Exploded {
			fmt.Printf("%s %v -> BOOM\n", kind, move.Cell)
		} else {
			fmt.Printf("%s %v -> %d nearby\n", kind, move.Cell, move.Count)
		}

		if *show {
			agent := session.Agent()
			fmt.Println(render.Frame(b, agent.MovesMade(), agent.Mines()))
		}
	}

	result, err := session.Play(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Println(render.Reveal(b))
	if result.Won {
		fmt.Printf("Won in %d moves (%d safe, %d guesses)\n", result.Moves, result.SafeMoves, result.Guesses)
	} else if result.Exploded {
		fmt.Printf("Lost after %d moves (%d safe, %d guesses)\n", result.Moves, result.SafeMoves, result.Guesses)
	} else {
		fmt.Printf("Stopped after %d moves with no candidate left\n", result.Moves)
	}
	fmt.Printf("Flagged %d of %d mines\n", result.FlaggedMines, b.MineCount())
}
