package undo

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Content is what the banner shows between the countdown and the Undo label.
// Any Bubble Tea model satisfies it.
type Content interface {
	View() string
}

type textContent string

func (t textContent) View() string { return string(t) }

// Text is a plain message.
func Text(s string) Content {
	return textContent(s)
}

// Func renders content lazily. The banner evaluates it once per Show.
type Func func() string

func (f Func) View() string {
	if f == nil {
		return ""
	}
	return f()
}

// Markdown renders md with glamour using the named standard style ("dark",
// "light", "notty", ...). If rendering fails the raw markdown is shown.
func Markdown(md, style string, width int) Content {
	if style == "" {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Text(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return Text(md)
	}
	return textContent(trimBlankLines(out))
}

// trimBlankLines drops the empty lines glamour puts around a document.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
