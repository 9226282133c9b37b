package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/taskdeck/taskdeck/types"
)

func setupTestStore(t *testing.T) (*FileTaskStore, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	s, err := NewFileTaskStoreWithFs(fs, "tasks.json")
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return s, fs
}

func mustAdd(t *testing.T, s *FileTaskStore, title, description string) {
	t.Helper()
	if _, err := s.Add(title, description); err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
}

func TestAddAndList(t *testing.T) {
	s, _ := setupTestStore(t)

	task, err := s.Add("First task", "a description")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.Title != "First task" {
		t.Errorf("Title mismatch: got %q", task.Title)
	}

	tasks := s.List()
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "First task" || tasks[0].Description != "a description" {
		t.Errorf("Listed task mismatch: %+v", tasks[0])
	}
	if tasks[0].Completed || tasks[0].CompletedAt != nil {
		t.Error("New task should be pending with nil CompletedAt")
	}
}

func TestAdd_EmptyTitle(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "Existing", "")

	_, err := s.Add("   ", "whatever")
	if err == nil {
		t.Fatal("Add with blank title should fail")
	}
	if !types.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if len(s.List()) != 1 {
		t.Error("Failed Add must not mutate the collection")
	}
}

func TestList_Snapshot(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "")

	snapshot := s.List()
	snapshot[0].Title = "mutated"

	if s.List()[0].Title != "A" {
		t.Error("Mutating the List result must not affect the store")
	}
}

func TestComplete(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "")
	mustAdd(t, s, "B", "")

	task, err := s.Complete(2)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if task.Title != "B" || !task.Completed {
		t.Errorf("Wrong task completed: %+v", task)
	}
	if task.CompletedAt == nil {
		t.Fatal("CompletedAt should be set")
	}
	if task.CompletedAt.Before(task.CreatedAt) {
		t.Error("CompletedAt should not precede CreatedAt")
	}

	stats := s.Stats()
	if stats.Completed != 1 || stats.Pending != 1 {
		t.Errorf("Stats should reflect the change immediately: %+v", stats)
	}
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "")
	if _, err := s.Complete(1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	_, err := s.Complete(1)
	if !types.IsInvalidState(err) {
		t.Errorf("Expected invalid state error, got %v", err)
	}
}

func TestPositionOutOfRange(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "Only task", "")

	for _, position := range []int{0, -1, 2, 100} {
		if _, err := s.Complete(position); !types.IsNotFound(err) {
			t.Errorf("Complete(%d): expected not found, got %v", position, err)
		}
		if _, err := s.Delete(position); !types.IsNotFound(err) {
			t.Errorf("Delete(%d): expected not found, got %v", position, err)
		}
	}

	if len(s.List()) != 1 {
		t.Error("Out-of-range operations must not mutate the collection")
	}
}

func TestDelete(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "")
	mustAdd(t, s, "B", "")
	mustAdd(t, s, "C", "")

	removed, err := s.Delete(2)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Title != "B" {
		t.Errorf("Wrong task removed: got %q, want B", removed.Title)
	}

	tasks := s.List()
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "A" || tasks[1].Title != "C" {
		t.Errorf("Order not preserved after delete: %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestClearAll(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "")
	mustAdd(t, s, "B", "")

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("List should be empty after ClearAll")
	}
	if s.Stats().Total != 0 {
		t.Error("Stats total should be 0 after ClearAll")
	}
}

func TestStats(t *testing.T) {
	s, _ := setupTestStore(t)

	stats := s.Stats()
	if stats.Total != 0 || stats.Completed != 0 || stats.Pending != 0 || stats.CompletionRate != 0.0 {
		t.Errorf("Empty store stats should be all zero: %+v", stats)
	}

	mustAdd(t, s, "A", "")
	mustAdd(t, s, "B", "")
	mustAdd(t, s, "C", "")
	for _, position := range []int{1, 2} {
		if _, err := s.Complete(position); err != nil {
			t.Fatalf("Complete(%d) failed: %v", position, err)
		}
	}

	stats = s.Stats()
	if stats.Total != 3 || stats.Completed != 2 || stats.Pending != 1 {
		t.Errorf("Stats counts wrong: %+v", stats)
	}
	if stats.CompletionRate != 66.7 {
		t.Errorf("Completion rate should round to 66.7, got %v", stats.CompletionRate)
	}
}

func TestDedupeByTitle(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "A", "first")
	mustAdd(t, s, "A", "second")
	mustAdd(t, s, "B", "")

	removed, err := s.DedupeByTitle()
	if err != nil {
		t.Fatalf("DedupeByTitle failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}

	tasks := s.List()
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "A" || tasks[0].Description != "first" {
		t.Errorf("First occurrence should be kept: %+v", tasks[0])
	}
	if tasks[1].Title != "B" {
		t.Errorf("Relative order not preserved: %+v", tasks[1])
	}

	// A second pass finds nothing.
	removed, err = s.DedupeByTitle()
	if err != nil {
		t.Fatalf("Second DedupeByTitle failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 removed on second pass, got %d", removed)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, fs := setupTestStore(t)
	mustAdd(t, s, "A", "one")
	mustAdd(t, s, "B", "two")
	mustAdd(t, s, "C", "")
	if _, err := s.Complete(2); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	path, err := s.Export("backup.json")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != "backup.json" {
		t.Errorf("Export path mismatch: got %q", path)
	}

	fresh, err := NewFileTaskStoreWithFs(fs, "other.json")
	if err != nil {
		t.Fatalf("Failed to create fresh store: %v", err)
	}
	if err := fresh.Import("backup.json"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	original := s.List()
	imported := fresh.List()
	if len(imported) != len(original) {
		t.Fatalf("Expected %d tasks after import, got %d", len(original), len(imported))
	}
	for i := range original {
		if imported[i].Title != original[i].Title ||
			imported[i].Description != original[i].Description ||
			imported[i].Completed != original[i].Completed {
			t.Errorf("Task %d mismatch after round trip: %+v vs %+v", i+1, imported[i], original[i])
		}
	}
}

func TestExport_DefaultFilename(t *testing.T) {
	s, fs := setupTestStore(t)
	mustAdd(t, s, "A", "")

	path, err := s.Export("")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path == "" {
		t.Fatal("Export should generate a filename")
	}
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("Generated export file %s should exist", path)
	}
}

func TestImport_Replaces(t *testing.T) {
	s, fs := setupTestStore(t)
	mustAdd(t, s, "Old", "")
	if _, err := s.Export("incoming.json"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other, err := NewFileTaskStoreWithFs(fs, "other.json")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	mustAdd(t, other, "Existing 1", "")
	mustAdd(t, other, "Existing 2", "")

	if err := other.Import("incoming.json"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	tasks := other.List()
	if len(tasks) != 1 || tasks[0].Title != "Old" {
		t.Errorf("Import should replace, not merge: %+v", tasks)
	}
}

func TestImport_Malformed(t *testing.T) {
	s, fs := setupTestStore(t)
	mustAdd(t, s, "Keep me", "")

	cases := map[string]string{
		"not-json.json":       "{{{",
		"null.json":           "null",
		"not-an-array.json":   `{"title":"x"}`,
		"invalid-record.json": `[{"title":"","description":"","completed":false,"created_at":"2026-01-02T15:04:05Z","completed_at":null}]`,
		"incoherent.json":     `[{"title":"x","description":"","completed":true,"created_at":"2026-01-02T15:04:05Z","completed_at":null}]`,
	}

	for name, content := range cases {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		err := s.Import(name)
		if !types.IsValidation(err) {
			t.Errorf("Import(%s): expected validation error, got %v", name, err)
		}
		tasks := s.List()
		if len(tasks) != 1 || tasks[0].Title != "Keep me" {
			t.Errorf("Import(%s): failed import must leave the collection unchanged", name)
		}
	}
}

func TestImport_MissingFile(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "Keep me", "")

	err := s.Import("no-such-file.json")
	if !types.IsIO(err) {
		t.Errorf("Expected I/O error, got %v", err)
	}
	if len(s.List()) != 1 {
		t.Error("Failed import must leave the collection unchanged")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileTaskStoreWithFs(fs, "tasks.json")
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	mustAdd(t, s, "First", "")
	mustAdd(t, s, "Second", "")
	if _, err := s.Complete(1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	reopened, err := NewFileTaskStoreWithFs(fs, "tasks.json")
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}

	tasks := reopened.List()
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks after reopen, got %d", len(tasks))
	}
	if tasks[0].Title != "First" || tasks[1].Title != "Second" {
		t.Error("Insertion order must be stable across save/load")
	}
	if !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Error("Completion state lost across reopen")
	}
	if tasks[0].ID == "" {
		t.Error("Loaded tasks should get runtime IDs")
	}
}

func TestLoad_MalformedBackingFile(t *testing.T) {
	for _, content := range []string{"not json", "null"} {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "tasks.json", []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		s, err := NewFileTaskStoreWithFs(fs, "tasks.json")
		if !types.IsValidation(err) {
			t.Fatalf("Expected validation error for backing file %q, got %v", content, err)
		}
		if s == nil {
			t.Fatal("Store should still be usable after a malformed load")
		}
		if len(s.List()) != 0 {
			t.Errorf("Store should start empty after loading %q", content)
		}

		// The store remains fully operational.
		mustAdd(t, s, "Fresh start", "")
		if len(s.List()) != 1 {
			t.Error("Store should accept new tasks after a malformed load")
		}
	}
}

func TestLoad_AbsentAndEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	s, err := NewFileTaskStoreWithFs(fs, "absent.json")
	if err != nil {
		t.Fatalf("Absent file should not be an error: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("Absent file should yield an empty collection")
	}

	if err := afero.WriteFile(fs, "empty.json", []byte{}, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	s, err = NewFileTaskStoreWithFs(fs, "empty.json")
	if err != nil {
		t.Fatalf("Empty file should not be an error: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("Empty file should yield an empty collection")
	}
}

func TestOSFileStore(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tasks.json")

	s, err := NewFileTaskStore(filePath)
	if err != nil {
		t.Fatalf("NewFileTaskStore failed: %v", err)
	}
	mustAdd(t, s, "On disk", "")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewFileTaskStore(filePath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	tasks := reopened.List()
	if len(tasks) != 1 || tasks[0].Title != "On disk" {
		t.Errorf("Task not persisted to disk: %+v", tasks)
	}
}
