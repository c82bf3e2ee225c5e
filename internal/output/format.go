// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"taskui/internal/service"
)

// TableHeader is the header row of the task table.
var TableHeader = []string{"ID", "TITLE", "DESCRIPTION", "STATUS"}

// FormatTable writes the task table: a header and one row per task, in list order.
// Columns are separated by at least two spaces.
func FormatTable(w io.Writer, tasks []service.Task) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(TableHeader, "\t"))
	for _, task := range tasks {
		fmt.Fprintln(tw, strings.Join(displayRow(task), "\t"))
	}
	return tw.Flush()
}

// FormatTask writes one task as "key: value" lines.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", NormalizeTitle(task.Title))
	fmt.Fprintf(w, "description: %s\n", normalizeText(task.Description))
	fmt.Fprintf(w, "status:      %s\n", task.Status)
}

// Row returns the cells of a task as stored: id, title, description, status.
// The interactive tables show these unchanged.
func Row(task service.Task) []string {
	return []string{
		fmt.Sprint(task.ID),
		task.Title,
		task.Description,
		task.Status,
	}
}

// displayRow is Row normalized for line-oriented output.
func displayRow(task service.Task) []string {
	return []string{
		fmt.Sprint(task.ID),
		NormalizeTitle(task.Title),
		normalizeText(task.Description),
		task.Status,
	}
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines and tabs are replaced with spaces
func NormalizeTitle(title string) string {
	title = normalizeText(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText keeps a cell on one line.
func normalizeText(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
}
