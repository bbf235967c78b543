package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdparse/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, SIZE, EVENTS, STATUS
	minFileWidth     = 20
	minSizeWidth     = 8
	minEventsWidth   = 6
	minStatusWidth   = 12
	heavySeparator   = "="
)

// Row states.
const (
	StatusRendered  = "rendered"
	StatusCached    = "cached"
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
)

// TableRow represents a single row in the file table.
type TableRow struct {
	File   string
	Size   string
	Events string
	Status string
	Failed bool
	Cached bool
}

// OutcomeToTableRow converts a file outcome to a table row shown under
// the given display path.
func OutcomeToTableRow(path string, outcome runner.FileOutcome) TableRow {
	row := TableRow{
		File:   path,
		Size:   FormatBytes(outcome.Bytes),
		Events: "-",
		Cached: outcome.CacheHit,
	}
	if outcome.Events > 0 {
		row.Events = strconv.Itoa(outcome.Events)
	}

	switch {
	case outcome.Error != nil:
		row.Failed = true
		row.Size = "-"
		row.Status = outcome.Error.Error()
	case outcome.Output != "" && outcome.Written:
		row.Status = StatusWritten
	case outcome.Output != "":
		row.Status = StatusUnchanged
	case outcome.CacheHit:
		row.Status = StatusCached
	default:
		row.Status = StatusRendered
	}
	return row
}

// TableFormatter formats file outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats rows as a styled table.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file   int
	size   int
	events int
	status int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		size:   minSizeWidth,
		events: minEventsWidth,
		status: minStatusWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.size = max(widths.size, len(row.Size))
		widths.events = max(widths.events, len(row.Events))
		widths.status = max(widths.status, len(row.Status))
	}

	// Shrink the status column first, then file paths.
	if total := widths.total(); total > t.termWidth {
		widths.status = max(minStatusWidth, widths.status-(total-t.termWidth))
	}
	if total := widths.total(); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (w columnWidths) total() int {
	return w.file + w.size + w.events + w.status + tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.size, "SIZE",
		widths.events, "EVENTS",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

// formatRow formats a single table row, colored by its state.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %*s  %*s  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.size, row.Size,
		widths.events, row.Events,
		widths.status, truncateString(row.Status, widths.status),
	)
	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Failed:
		return t.styles.TableErrorRow
	case row.Cached:
		return t.styles.TableCachedRow
	default:
		return lipgloss.NewStyle()
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
