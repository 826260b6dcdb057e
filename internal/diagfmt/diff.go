package diagfmt

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	diffAddColor    = color.New(color.FgGreen)
	diffDelColor    = color.New(color.FgRed)
	diffHunkColor   = color.New(color.FgCyan)
	diffHeaderColor = color.New(color.Bold)
)

// Diff writes a unified diff, colouring it line by line when enabled.
func Diff(w io.Writer, diff string, enabled bool) error {
	if !enabled {
		_, err := io.WriteString(w, diff)
		return err
	}
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		var c *color.Color
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			c = diffHeaderColor
		case strings.HasPrefix(body, "@@"):
			c = diffHunkColor
		case strings.HasPrefix(body, "+"):
			c = diffAddColor
		case strings.HasPrefix(body, "-"):
			c = diffDelColor
		}
		if c != nil {
			body = paint(c, true, body)
		}
		if nl {
			body += "\n"
		}
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return nil
}
