package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.portfolio-drive/results.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".portfolio-drive", "results.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{Player: "alice", Level: 1, Ticks: 900, Distance: 50.4, Collisions: 2},
		{Player: "bob", Level: 1, Ticks: 700, Distance: 50.1},
		{Player: "carol", Level: 1, Ticks: 1200, Distance: 50.3, Collisions: 4},
		{Player: "alice", Level: 2, Ticks: 2000, Distance: 100.2},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err := store.BestLevelResults(1, 10)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}

	if len(best) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(best))
	}

	// Should be sorted by ticks ascending
	wantOrder := []string{"bob", "alice", "carol"}
	for i, want := range wantOrder {
		if best[i].Player != want {
			t.Errorf("result %d: expected player %s, got %s", i, want, best[i].Player)
		}
	}
	if best[0].Ticks != 700 {
		t.Errorf("Expected best ticks 700, got %d", best[0].Ticks)
	}
	if best[1].Collisions != 2 {
		t.Errorf("Expected 2 collisions, got %d", best[1].Collisions)
	}
	if best[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	level2, err := store.BestLevelResults(2, 10)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(level2) != 1 || level2[0].Distance != 100.2 {
		t.Errorf("Expected one level 2 result with distance 100.2, got %+v", level2)
	}
}

func TestStoreBestLevelResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveLevelResult(LevelResult{Level: 3, Ticks: uint64(i * 100)}); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err := store.BestLevelResults(3, 5)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(best) != 5 {
		t.Errorf("Expected 5 results, got %d", len(best))
	}

	// Non-positive limit falls back to 10
	best, err = store.BestLevelResults(3, 0)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(best) != 10 {
		t.Errorf("Expected 10 results, got %d", len(best))
	}
}

func TestStoreAnonymousPlayer(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevelResult(LevelResult{Level: 1, Ticks: 10}); err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}

	best, err := store.BestLevelResults(1, 1)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if best[0].Player != AnonymousPlayer {
		t.Errorf("Expected player %q, got %q", AnonymousPlayer, best[0].Player)
	}
}

func TestStoreMarkManualAdvance(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveLevelResult(LevelResult{Level: 1, Ticks: 10})
	if err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}
	if err := store.MarkManualAdvance(id); err != nil {
		t.Fatalf("MarkManualAdvance() failed: %v", err)
	}

	best, err := store.BestLevelResults(1, 1)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if !best[0].ManualAdvance {
		t.Error("Expected manual advance to be recorded")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	// Empty level
	stats, err := store.LevelStats(1)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Completions != 0 || stats.BestTicks != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
	if !stats.LastPlayed.IsZero() {
		t.Error("Expected zero last played time")
	}

	for _, r := range []LevelResult{
		{Level: 1, Ticks: 300, Collisions: 1},
		{Level: 1, Ticks: 100, Collisions: 2},
	} {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	stats, err = store.LevelStats(1)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Completions != 2 {
		t.Errorf("Expected 2 completions, got %d", stats.Completions)
	}
	if stats.BestTicks != 100 {
		t.Errorf("Expected best ticks 100, got %d", stats.BestTicks)
	}
	if stats.AvgTicks != 200 {
		t.Errorf("Expected average ticks 200, got %f", stats.AvgTicks)
	}
	if stats.TotalCollisions != 3 {
		t.Errorf("Expected 3 collisions, got %d", stats.TotalCollisions)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played time to be set")
	}
}

func TestStoreAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []LevelResult{
		{Level: 1, Ticks: 300},
		{Level: 3, Ticks: 900},
		{Level: 3, Ticks: 800},
	} {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if all[3].Completions != 2 || all[3].BestTicks != 800 {
		t.Errorf("Unexpected level 3 stats: %+v", all[3])
	}
	if _, ok := all[2]; ok {
		t.Error("Expected no stats for level 2")
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevelResult(LevelResult{Level: 2, Ticks: 5}); err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}
	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	best, err := store.BestLevelResults(2, 10)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(best) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(best))
	}
}
