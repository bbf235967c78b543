package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/message"
)

// FormatMessage formats a parse message for terminal output. When
// sourceLine is not empty it is printed under the message with a caret
// at the message column.
func (s *Styles) FormatMessage(path string, msg *message.Message, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(path)
	column := 0
	if msg.Place != nil {
		location += s.Location.Render(":" + msg.Place.String())
		column = msg.Place.Start.Column
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(msg.Reason),
		s.RuleID.Render("("+msg.Source+":"+msg.RuleID+")"),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, column))
	}

	return builder.String()
}

// FormatFileError formats any failure of a file. Parse messages get the
// source line they point at, other errors a single line.
func (s *Styles) FormatFileError(path string, err error, sourceLine string) string {
	var msg *message.Message
	if errors.As(err, &msg) {
		return s.FormatMessage(path, msg, sourceLine)
	}
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, detail string) string {
	header := s.FilePath.Render(path)
	if detail != "" {
		header += s.Dim.Render(" (" + detail + ")")
	}
	return header
}
