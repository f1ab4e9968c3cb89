package game

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
)

func BenchmarkFirstReveal(b *testing.B) {
	testCases := []struct {
		name  string
		size  int
		mines int
	}{
		{"Easy_9x9", 9, 8},
		{"Medium_16x16", 16, 25},
		{"Hard_25x25", 25, 62},
		{"Dense_25x25", 25, 300},
		{"Sparse_50x50", 50, 50},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(12345))
			revealed := 0

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				engine := createBenchEngine(tc.size, tc.mines, rng)
				b.StartTimer()

				res, err := engine.Reveal(tc.size/2, tc.size/2)
				if err != nil {
					b.Fatal(err)
				}
				revealed += len(res.Revealed)
			}

			b.ReportMetric(float64(tc.size*tc.size), "board_cells")
			b.ReportMetric(float64(revealed)/float64(b.N), "cells_per_reveal")
		})
	}
}

func BenchmarkSnapshot(b *testing.B) {
	for _, size := range []int{9, 16, 25} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			engine := createBenchEngine(size, core.DefaultMineTotal(size), rand.New(rand.NewSource(1)))
			if _, err := engine.Reveal(0, 0); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = engine.Snapshot()
			}
		})
	}
}

func BenchmarkBoardRender(b *testing.B) {
	engine := createBenchEngine(25, 62, rand.New(rand.NewSource(1)))
	if _, err := engine.Reveal(12, 12); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.ColorBoard()
	}
}

func createBenchEngine(size, mines int, rng *rand.Rand) *Engine {
	engine, err := NewEngine(context.Background(), GameConfig{
		Size:      size,
		MineTotal: mines,
		Rng:       rng,
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create engine: %v", err))
	}
	return engine
}
