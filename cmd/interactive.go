package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/watchdog"
	"github.com/taskdeck/taskdeck/store"
	"github.com/taskdeck/taskdeck/types"
)

// runInteractiveSession wires the store, the idle watchdog and stdin
// together and runs the menu loop until the user exits, input ends or
// the watchdog expires.
func runInteractiveSession() error {
	config := GetConfig()

	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	window := time.Duration(config.Session.TimeoutSeconds) * time.Second
	sess := newSession(taskStore, watchdog.New(window), os.Stdin, os.Stdout)
	return sess.run()
}

// session is the interactive controller. It owns the single task store
// and the watchdog; all store mutations happen on this goroutine. One
// pump goroutine reads stdin into a channel so the loop can select
// between user input and watchdog expiry.
type session struct {
	store    store.TaskStore
	wd       *watchdog.Watchdog
	window   time.Duration
	lines    chan string
	out      io.Writer
	timedOut bool
}

func newSession(s store.TaskStore, wd *watchdog.Watchdog, in io.Reader, out io.Writer) *session {
	sess := &session{
		store: s,
		wd:    wd,
		lines: make(chan string),
		out:   out,
	}
	go sess.pump(in)
	return sess
}

// pump feeds input lines to the session loop. The channel is closed on
// EOF so the loop can tell "input ended" from "watchdog expired".
func (s *session) pump(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		s.lines <- scanner.Text()
	}
	close(s.lines)
}

// readLine prompts and waits for either a line of input or watchdog
// expiry. Every received line re-arms the watchdog, matching the rule
// that any user input counts as activity. ok is false when the session
// should end (EOF or timeout).
func (s *session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	select {
	case line, open := <-s.lines:
		if !open {
			return "", false
		}
		s.wd.Reset()
		return strings.TrimSpace(line), true
	case <-s.wd.Expired():
		s.timedOut = true
		return "", false
	}
}

func (s *session) showMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, headerStyle.Render("=== taskdeck ==="))
	fmt.Fprintln(s.out, "1. Add task")
	fmt.Fprintln(s.out, "2. List tasks")
	fmt.Fprintln(s.out, "3. Complete task")
	fmt.Fprintln(s.out, "4. Delete task")
	fmt.Fprintln(s.out, "5. Statistics")
	fmt.Fprintln(s.out, "6. Task history")
	fmt.Fprintln(s.out, "7. Export tasks")
	fmt.Fprintln(s.out, "8. Import tasks")
	fmt.Fprintln(s.out, "9. Clear all tasks")
	fmt.Fprintln(s.out, "0. Exit")
}

// run is the main menu loop. It returns nil on a normal exit, on EOF
// and on idle timeout; the session end reason is reported to the user
// either way.
func (s *session) run() error {
	s.window = s.wd.Window()
	fmt.Fprintln(s.out, "Welcome to taskdeck!")
	fmt.Fprintf(s.out, "Session ends after %s of inactivity.\n", s.window)

	s.wd.Start()
	defer s.wd.Stop()

	for {
		s.showMenu()
		choice, ok := s.readLine("Select an operation (0-9): ")
		if !ok {
			return s.finish()
		}

		switch choice {
		case "0":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case "1":
			s.handleAdd()
		case "2":
			renderTaskList(s.out, s.store.List())
		case "3":
			s.handleComplete()
		case "4":
			s.handleDelete()
		case "5":
			renderStats(s.out, s.store.Stats())
		case "6":
			renderHistory(s.out, s.store.List())
		case "7":
			s.handleExport()
		case "8":
			s.handleImport()
		case "9":
			s.handleClear()
		default:
			fmt.Fprintln(s.out, "Invalid choice, enter a number between 0 and 9.")
		}
	}
}

func (s *session) finish() error {
	if s.timedOut {
		fmt.Fprintf(s.out, "\nSession timed out after %s of inactivity. Exiting.\n", s.window)
	}
	return nil
}

func (s *session) handleAdd() {
	title, ok := s.readLine("Task title: ")
	if !ok {
		return
	}
	description, ok := s.readLine("Description (optional): ")
	if !ok {
		return
	}

	task, err := s.store.Add(title, description)
	if err != nil {
		if types.IsValidation(err) {
			fmt.Fprintln(s.out, "Task title cannot be empty!")
			return
		}
		fmt.Fprintf(s.out, "Could not add task: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Task %q has been added.\n", task.Title)
}

// readPosition shows the current list and asks for a task number.
// Returns ok=false when the list is empty or the session should end.
func (s *session) readPosition(prompt string) (int, bool) {
	tasks := s.store.List()
	renderTaskList(s.out, tasks)
	if len(tasks) == 0 {
		return 0, false
	}

	input, ok := s.readLine(prompt)
	if !ok {
		return 0, false
	}
	position, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(s.out, "Enter a valid number.")
		return 0, false
	}
	return position, true
}

func (s *session) handleComplete() {
	position, ok := s.readPosition("Task number to complete: ")
	if !ok {
		return
	}

	task, err := s.store.Complete(position)
	switch {
	case err == nil:
		fmt.Fprintf(s.out, "Task %q marked as completed.\n", task.Title)
	case types.IsNotFound(err):
		fmt.Fprintln(s.out, "Invalid task number!")
	case types.IsInvalidState(err):
		fmt.Fprintln(s.out, "That task is already completed.")
	default:
		fmt.Fprintf(s.out, "Could not complete task: %v\n", err)
	}
}

func (s *session) handleDelete() {
	position, ok := s.readPosition("Task number to delete: ")
	if !ok {
		return
	}

	task, err := s.store.Delete(position)
	switch {
	case err == nil:
		fmt.Fprintf(s.out, "Task %q has been deleted.\n", task.Title)
	case types.IsNotFound(err):
		fmt.Fprintln(s.out, "Invalid task number!")
	default:
		fmt.Fprintf(s.out, "Could not delete task: %v\n", err)
	}
}

func (s *session) handleExport() {
	path, ok := s.readLine("Export filename (blank for automatic): ")
	if !ok {
		return
	}

	written, err := s.store.Export(path)
	if err != nil {
		fmt.Fprintf(s.out, "Could not export tasks: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Tasks exported to %s.\n", written)
}

func (s *session) handleImport() {
	path, ok := s.readLine("Import filename: ")
	if !ok {
		return
	}
	if path == "" {
		fmt.Fprintln(s.out, "Enter a filename.")
		return
	}

	if err := s.store.Import(path); err != nil {
		switch {
		case types.IsValidation(err):
			fmt.Fprintf(s.out, "%s is not a valid task file.\n", path)
		case types.IsIO(err):
			fmt.Fprintf(s.out, "Could not read %s.\n", path)
		default:
			fmt.Fprintf(s.out, "Could not import tasks: %v\n", err)
		}
		return
	}
	fmt.Fprintf(s.out, "Imported %d tasks from %s (previous list replaced).\n", len(s.store.List()), path)
}

func (s *session) handleClear() {
	confirm, ok := s.readLine("Clear all tasks? This cannot be undone. (yes/no): ")
	if !ok {
		return
	}
	switch strings.ToLower(confirm) {
	case "yes", "y":
		if err := s.store.ClearAll(); err != nil {
			fmt.Fprintf(s.out, "Could not clear tasks: %v\n", err)
			return
		}
		fmt.Fprintln(s.out, "All tasks have been cleared.")
	default:
		fmt.Fprintln(s.out, "Operation cancelled.")
	}
}
