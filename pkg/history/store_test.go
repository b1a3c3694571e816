package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/repromptsquest/repmt/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")
	store, err := NewStore(dataDir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// The database file must exist on disk.
	if _, err := os.Stat(filepath.Join(dataDir, "history.db")); err != nil {
		t.Fatalf("expected history.db to be created: %v", err)
	}
	return store
}

func promptFixture(created time.Time) *models.GeneratedPrompt {
	return &models.GeneratedPrompt{
		Text:       "# Prompt\n",
		PromptType: models.PromptTypeDocumentation,
		Root:       "/tmp/project",
		FileCount:  3,
		ByteSize:   9,
		CreatedAt:  created,
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		if err := store.Record(promptFixture(base.Add(time.Duration(i)*time.Minute)), "markdown", "stdout"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first.
	if !entries[0].CreatedAt.After(entries[2].CreatedAt) {
		t.Error("expected newest entry first")
	}
	if entries[0].PromptType != string(models.PromptTypeDocumentation) {
		t.Errorf("unexpected prompt type %q", entries[0].PromptType)
	}
	if entries[0].FileCount != 3 {
		t.Errorf("unexpected file count %d", entries[0].FileCount)
	}
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		if err := store.Record(promptFixture(base.Add(time.Duration(i)*time.Second)), "json", "clipboard"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected limit of 2, got %d", len(entries))
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Record(promptFixture(time.Now()), "markdown", "out.md"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d entries", len(entries))
	}
}
