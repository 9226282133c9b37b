package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

const timestampFormat = "2006-01-02 15:04"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// statusMark returns the completion marker for a task.
func statusMark(t models.Task) string {
	if t.Completed {
		return doneStyle.Render("✓")
	}
	return pendingStyle.Render("○")
}

// renderTaskLine formats one task for the list view.
func renderTaskLine(position int, t models.Task) string {
	line := fmt.Sprintf("%d. [%s] %s", position, statusMark(t), t.Title)
	if t.Description != "" {
		line += " - " + t.Description
	}
	line += " " + faintStyle.Render("(Created: "+t.CreatedAt.Format(timestampFormat)+")")
	return line
}

// renderTaskList writes the full task list in insertion order.
func renderTaskList(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks available.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render("=== Task List ==="))
	for i, t := range tasks {
		fmt.Fprintln(w, renderTaskLine(i+1, t))
	}
}

// renderStats writes the statistics view.
func renderStats(w io.Writer, stats store.Stats) {
	fmt.Fprintln(w, headerStyle.Render("=== Statistics ==="))
	fmt.Fprintf(w, "Total tasks: %d\n", stats.Total)
	fmt.Fprintf(w, "Completed:   %d\n", stats.Completed)
	fmt.Fprintf(w, "Pending:     %d\n", stats.Pending)
	fmt.Fprintf(w, "Completion rate: %.1f%%\n", stats.CompletionRate)
}

// renderHistory writes the history view: every task with its creation
// and completion timestamps and description.
func renderHistory(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No task history available.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render("=== Task History ==="))
	for i, t := range tasks {
		completed := "Not completed"
		if t.CompletedAt != nil {
			completed = t.CompletedAt.Format(timestampFormat)
		}
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, statusMark(t), t.Title)
		fmt.Fprintf(w, "   Created:   %s\n", t.CreatedAt.Format(timestampFormat))
		fmt.Fprintf(w, "   Completed: %s\n", completed)
		if t.Description != "" {
			fmt.Fprintf(w, "   Description: %s\n", t.Description)
		}
	}
}
