package gameserver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentActionsOnOneGame checks that actions on a single board are serialised
func TestConcurrentActionsOnOneGame(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{})
	snap, err := gm.CreateGame(context.Background(), GameParams{Difficulty: "easy"})
	require.NoError(t, err)

	const workers, toggles = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < toggles; i++ {
				_, _, err := gm.ToggleFlag(snap.GameID, 0, 0)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	final, err := gm.Snapshot(snap.GameID)
	require.NoError(t, err)
	assert.Equal(t, workers*toggles, final.Moves, "every toggle is applied exactly once")
	assert.Equal(t, 0, final.FlagsPlaced, "an even number of toggles leaves the cell unflagged")
}

// TestNoDeadlock runs cleanup concurrently with game operations
func TestNoDeadlock(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{GameTTL: time.Hour})

	var wg sync.WaitGroup
	ids := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := gm.CreateGame(context.Background(), GameParams{Size: 6})
			if assert.NoError(t, err) {
				ids <- snap.GameID
			}
		}()
	}
	wg.Wait()
	close(ids)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var inner sync.WaitGroup
		for id := range ids {
			inner.Add(1)
			go func(id string) {
				defer inner.Done()
				for i := 0; i < 20; i++ {
					_, _, _ = gm.Reveal(id, i%6, i/6)
					_ = gm.ListGames()
				}
			}(id)
		}
		for i := 0; i < 5; i++ {
			gm.cleanupGames(time.Now().Add(2 * time.Hour))
		}
		inner.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Deadlock detected: operations did not complete in time")
	}
}
