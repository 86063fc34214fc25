package cli

import (
	"io"
	"strings"
	"text/tabwriter"
)

var cellReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Table provides a simple table formatter.
type Table struct {
	w       *tabwriter.Writer
	headers []string
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table. Tabs and newlines in values are flattened so
// they cannot break the columns.
func (t *Table) Row(values ...string) {
	clean := make([]string, len(values))
	for i, v := range values {
		clean[i] = cellReplacer.Replace(v)
	}
	_, _ = t.w.Write([]byte(strings.Join(clean, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// TruncateString truncates a string to maxLen, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
