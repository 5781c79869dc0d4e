// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/api"
)

// SectionSeparator frames section headers.
const SectionSeparator = "------------"

// FormatSectionHeader writes a framed header with a count, e.g. "Pending (2)".
func FormatSectionHeader(w io.Writer, title string, count int) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintf(w, "%s (%d)\n", title, count)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatTask writes one task line: the id right-aligned in four columns,
// two spaces and the title. A non-empty description follows on its own
// line, indented under the title.
func FormatTask(w io.Writer, task api.Task) {
	fmt.Fprintf(w, "%4d  %s\n", task.ID, normalize(task.Title, "(untitled)"))
	if desc := normalize(task.Description, ""); desc != "" {
		fmt.Fprintf(w, "      %s\n", desc)
	}
}

// FormatStats writes the summary line shown under the task sections.
func FormatStats(w io.Writer, pending, completed int) {
	fmt.Fprintf(w, "%d pending, %d completed, %d total\n", pending, completed, pending+completed)
}

// normalize flattens newlines and substitutes empty for blank text.
func normalize(s, empty string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return empty
	}
	return s
}
