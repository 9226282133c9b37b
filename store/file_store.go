package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/types"
)

const (
	lockSuffix         = ".lock"
	tempSuffix         = ".tmp"
	exportNamePattern  = "tasks_export_%s.json"
	exportTimestampFmt = "20060102_150405"
)

// FileTaskStore implements TaskStore with an ordered in-memory slice
// persisted as a flat JSON array. There is exactly one mutator (the
// session loop), so no in-process locking is needed; a flock guards
// the backing file against a second CLI invocation for the lifetime
// of the store.
type FileTaskStore struct {
	filePath string
	fs       afero.Fs
	flk      *flock.Flock
	tasks    []models.Task
}

// NewFileTaskStore opens a store backed by filePath on the OS
// filesystem and acquires the session file lock.
//
// An absent or empty backing file initializes an empty collection. A
// present but malformed file returns a usable empty store together
// with a validation error, so the caller can report once and continue
// fresh (the file itself is left untouched until the next mutation).
func NewFileTaskStore(filePath string) (*FileTaskStore, error) {
	s := &FileTaskStore{
		filePath: filePath,
		fs:       afero.NewOsFs(),
		tasks:    []models.Task{},
	}

	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, types.NewIOError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	s.flk = flock.New(filePath + lockSuffix)
	locked, err := s.flk.TryLock()
	if err != nil {
		return nil, types.NewIOError(fmt.Sprintf("failed to acquire lock for %s", filePath), err)
	}
	if !locked {
		return nil, types.NewIOError(fmt.Sprintf("another session holds the lock for %s", filePath), nil)
	}

	if err := s.load(); err != nil {
		if types.IsValidation(err) {
			// Recoverable: hand back an empty store, surface once.
			s.tasks = []models.Task{}
			return s, err
		}
		_ = s.flk.Unlock()
		return nil, err
	}
	return s, nil
}

// NewFileTaskStoreWithFs opens a store on the given afero filesystem
// without taking a file lock. Intended for tests running against an
// in-memory filesystem.
func NewFileTaskStoreWithFs(fs afero.Fs, filePath string) (*FileTaskStore, error) {
	s := &FileTaskStore{
		filePath: filePath,
		fs:       fs,
		tasks:    []models.Task{},
	}
	if err := s.load(); err != nil {
		if types.IsValidation(err) {
			s.tasks = []models.Task{}
			return s, err
		}
		return nil, err
	}
	return s, nil
}

// load reads the backing file into memory. Absent and empty files are
// not errors; malformed content is a validation error.
func (s *FileTaskStore) load() error {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = []models.Task{}
			return nil
		}
		return types.NewIOError(fmt.Sprintf("failed to read data file %s", s.filePath), err)
	}
	if len(data) == 0 {
		s.tasks = []models.Task{}
		return nil
	}

	tasks, err := decodeTasks(data, s.filePath)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// decodeTasks parses a JSON array of task records and validates each
// record against the task invariants.
func decodeTasks(data []byte, source string) ([]models.Task, error) {
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, types.NewValidationError(fmt.Sprintf("%s is not a valid task file", source), err)
	}
	// JSON null unmarshals into a nil slice without error; only an
	// actual array is a well-formed task file.
	if tasks == nil {
		return nil, types.NewValidationError(fmt.Sprintf("%s is not a valid task file", source), nil)
	}
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return nil, types.NewValidationError(fmt.Sprintf("%s: record %d is invalid", source, i+1), err)
		}
		tasks[i].EnsureID()
	}
	return tasks, nil
}

// save writes the full collection through to the backing file
// atomically: marshal, write to a temp file, rename over the target.
func (s *FileTaskStore) save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return types.NewIOError("failed to marshal tasks", err)
	}

	tempPath := s.filePath + tempSuffix
	if err := afero.WriteFile(s.fs, tempPath, data, 0o644); err != nil {
		return types.NewIOError(fmt.Sprintf("failed to write temporary data file %s", tempPath), err)
	}
	if err := s.fs.Rename(tempPath, s.filePath); err != nil {
		_ = s.fs.Remove(tempPath)
		return types.NewIOError(fmt.Sprintf("failed to replace data file %s", s.filePath), err)
	}
	return nil
}

// Add appends a new pending task and persists the collection.
func (s *FileTaskStore) Add(title, description string) (models.Task, error) {
	task, err := models.New(title, description)
	if err != nil {
		return models.Task{}, err
	}

	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return models.Task{}, err
	}
	return task, nil
}

// List returns a copy of the collection in insertion order.
func (s *FileTaskStore) List() []models.Task {
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

// taskAt resolves a 1-based position, or fails with a not-found error.
func (s *FileTaskStore) taskAt(position int) (int, error) {
	if position < 1 || position > len(s.tasks) {
		return 0, types.NewNotFoundError(fmt.Sprintf("no task at position %d (have %d)", position, len(s.tasks)))
	}
	return position - 1, nil
}

// Complete marks the task at the given position as completed and
// persists the collection.
func (s *FileTaskStore) Complete(position int) (models.Task, error) {
	idx, err := s.taskAt(position)
	if err != nil {
		return models.Task{}, err
	}

	original := s.tasks[idx]
	if err := s.tasks[idx].Complete(); err != nil {
		return models.Task{}, err
	}
	if err := s.save(); err != nil {
		s.tasks[idx] = original
		return models.Task{}, err
	}
	return s.tasks[idx], nil
}

// Delete removes and returns the task at the given position and
// persists the collection.
func (s *FileTaskStore) Delete(position int) (models.Task, error) {
	idx, err := s.taskAt(position)
	if err != nil {
		return models.Task{}, err
	}

	removed := s.tasks[idx]
	rest := make([]models.Task, 0, len(s.tasks)-1)
	rest = append(rest, s.tasks[:idx]...)
	rest = append(rest, s.tasks[idx+1:]...)

	previous := s.tasks
	s.tasks = rest
	if err := s.save(); err != nil {
		s.tasks = previous
		return models.Task{}, err
	}
	return removed, nil
}

// ClearAll removes every task and persists the empty collection.
func (s *FileTaskStore) ClearAll() error {
	previous := s.tasks
	s.tasks = []models.Task{}
	if err := s.save(); err != nil {
		s.tasks = previous
		return err
	}
	return nil
}

// Stats computes counts and the completion rate, rounded to one
// decimal. An empty collection reports 0.0 rather than dividing by
// zero.
func (s *FileTaskStore) Stats() Stats {
	stats := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	return stats
}

// Export writes the collection to path as a JSON array. An empty path
// selects a timestamped default filename. The in-memory collection is
// never mutated.
func (s *FileTaskStore) Export(path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf(exportNamePattern, time.Now().Format(exportTimestampFmt))
	}

	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return "", types.NewIOError("failed to marshal tasks for export", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", types.NewIOError(fmt.Sprintf("failed to write export file %s", path), err)
	}
	return path, nil
}

// Import replaces the collection with the JSON array of task records
// at path and persists it. Replace (not merge) keeps the result
// deterministic: after a successful import the store holds exactly
// the file's records, in file order. On any failure the previous
// collection remains in place.
func (s *FileTaskStore) Import(path string) error {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return types.NewIOError(fmt.Sprintf("failed to read import file %s", path), err)
	}

	tasks, err := decodeTasks(data, path)
	if err != nil {
		return err
	}

	previous := s.tasks
	s.tasks = tasks
	if err := s.save(); err != nil {
		s.tasks = previous
		return err
	}
	return nil
}

// DedupeByTitle removes tasks whose title duplicates an earlier task's
// title, keeping the first occurrence. Order of the survivors is
// preserved. Persists only when something was removed.
func (s *FileTaskStore) DedupeByTitle() (int, error) {
	seen := make(map[string]bool, len(s.tasks))
	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if seen[t.Title] {
			continue
		}
		seen[t.Title] = true
		kept = append(kept, t)
	}

	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	previous := s.tasks
	s.tasks = kept
	if err := s.save(); err != nil {
		s.tasks = previous
		return 0, err
	}
	return removed, nil
}

// Close releases the session file lock, if one was taken.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
