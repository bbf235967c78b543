package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (1 cached, 2 written), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Success.Render("No files to render") + "\n"
	}

	var head string
	if stats.FilesFailed == 0 {
		head = s.Success.Render(fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered)))
	} else {
		head = fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered))
	}

	var details []string
	if stats.CacheHits > 0 {
		details = append(details, fmt.Sprintf("%d cached", stats.CacheHits))
	}
	if stats.FilesWritten > 0 {
		details = append(details, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		details = append(details, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if len(details) > 0 {
		head += s.Dim.Render(" (" + strings.Join(details, ", ") + ")")
	}

	if stats.FilesFailed > 0 {
		head += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed))
	}

	return head + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files rendered", s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)))
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.CacheHits > 0 {
		row("Cache hits", s.SummaryValue.Render(strconv.Itoa(stats.CacheHits)))
	}

	builder.WriteString("\n")
	row("Markdown in", s.SummaryValue.Render(FormatBytes(stats.BytesIn)))
	row("HTML out", s.SummaryValue.Render(FormatBytes(stats.BytesOut)))
	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatBytes formats a byte count with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return strconv.Itoa(n) + " B"
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
