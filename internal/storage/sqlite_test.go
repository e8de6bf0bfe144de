package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(SessionRecord{
		GameID:   "match3",
		Player:   "alice",
		Moves:    12,
		Matched:  7,
		Reverted: 5,
		Cleared:  24,
		Duration: 95*time.Second + 250*time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveSession() id %q is not a UUID: %v", id, err)
	}

	rec, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("SessionByID() returned nil for saved session")
	}
	if rec.GameID != "match3" || rec.Player != "alice" || rec.Moves != 12 || rec.Matched != 7 || rec.Reverted != 5 || rec.Cleared != 24 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Duration != 95*time.Second+250*time.Millisecond {
		t.Errorf("Duration = %v", rec.Duration)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.SessionByID(uuid.NewString())
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for unknown session, got %+v", rec)
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.NewString()

	got, err := store.SaveSession(SessionRecord{ID: want, GameID: "match3"})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if got != want {
		t.Errorf("id = %q, want %q", got, want)
	}

	if _, err := store.SaveSession(SessionRecord{ID: want, GameID: "match3"}); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestStoreRejectsMissingGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSession(SessionRecord{Moves: 1}); err == nil {
		t.Error("session without game id accepted")
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveSession(SessionRecord{GameID: "match3", Cleared: i}); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}
	store.SaveSession(SessionRecord{GameID: "match3_cascade", Cleared: 99})

	recs, err := store.RecentSessions("match3", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(recs))
	}

	// Newest first
	for i, want := range []int{4, 3, 2} {
		if recs[i].Cleared != want {
			t.Errorf("recs[%d].Cleared = %d, want %d", i, recs[i].Cleared, want)
		}
	}

	all, _ := store.RecentSessions("match3", 0)
	if len(all) != 5 {
		t.Errorf("default limit returned %d sessions, want 5", len(all))
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{GameID: "match3"})
	store.SaveSession(SessionRecord{GameID: "match3"})
	store.SaveSession(SessionRecord{GameID: "match3_cascade"})

	if err := store.ClearSessions("match3"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	classic, _ := store.RecentSessions("match3", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 sessions after clear, got %d", len(classic))
	}

	cascade, _ := store.RecentSessions("match3_cascade", 10)
	if len(cascade) != 1 {
		t.Errorf("Cascade sessions should not be affected by clearing match3")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Sessions != 0 || empty.BestCleared != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	store.SaveSession(SessionRecord{GameID: "match3", Moves: 4, Cleared: 9, Duration: time.Minute})
	store.SaveSession(SessionRecord{GameID: "match3", Moves: 6, Cleared: 21, Duration: 2 * time.Minute})
	store.SaveSession(SessionRecord{GameID: "match3_cascade", Moves: 1, Cleared: 3})

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.TotalMoves != 10 || stats.TotalCleared != 30 || stats.BestCleared != 21 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgCleared != 15 {
		t.Errorf("AvgCleared = %v, want 15", stats.AvgCleared)
	}
	if stats.TotalPlayed != 3*time.Minute {
		t.Errorf("TotalPlayed = %v, want 3m", stats.TotalPlayed)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["match3_cascade"].Sessions != 1 {
		t.Errorf("unexpected all-games stats: %v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
