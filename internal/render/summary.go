// Package render prints summaries and history for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"NewsSnap/internal/domain"
)

// Palette holds ANSI styles for one theme.
type Palette struct {
	Title  string
	Accent string
	Muted  string
	Reset  string
}

// PaletteFor returns the styles for mode.
func PaletteFor(mode domain.ThemeMode) Palette {
	if mode == domain.ThemeLight {
		return Palette{Title: "\033[1;34m", Accent: "\033[35m", Muted: "\033[90m", Reset: "\033[0m"}
	}
	return Palette{Title: "\033[1;96m", Accent: "\033[93m", Muted: "\033[37m", Reset: "\033[0m"}
}

// Plain has no escape codes.
var Plain = Palette{}

// Summary writes one summary with its metadata.
func Summary(w io.Writer, s domain.Summary, p Palette) error {
	var b strings.Builder

	title := s.Title
	if title == "" {
		title = s.OriginalURL
	}
	fmt.Fprintf(&b, "%s%s%s\n", p.Title, title, p.Reset)

	var meta []string
	if len(s.Author) > 0 {
		meta = append(meta, "by "+strings.Join(s.Author, ", "))
	}
	if s.Publisher != "" {
		meta = append(meta, s.Publisher)
	}
	if s.ReadingTime != nil {
		meta = append(meta, fmt.Sprintf("%d min read", *s.ReadingTime))
	} else if s.WordCount != nil {
		meta = append(meta, ReadingTime(*s.WordCount))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s%s%s\n", p.Muted, strings.Join(meta, " · "), p.Reset)
	}
	fmt.Fprintf(&b, "%s%s%s\n\n", p.Muted, s.OriginalURL, p.Reset)

	b.WriteString(PlainText(s.Summary))
	b.WriteString("\n")

	if len(s.Keywords) > 0 {
		fmt.Fprintf(&b, "\n%sKeywords:%s %s\n", p.Accent, p.Reset, strings.Join(s.Keywords, ", "))
	}
	if len(s.Insights) > 0 {
		fmt.Fprintf(&b, "\n%sKey insights:%s\n", p.Accent, p.Reset)
		for _, insight := range s.Insights {
			fmt.Fprintf(&b, "  • %s\n", insight)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HistoryList writes one line per entry, most recent first.
func HistoryList(w io.Writer, entries []domain.Summary, p Palette, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No summaries yet.")
		return err
	}

	var b strings.Builder
	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = e.OriginalURL
		}
		fmt.Fprintf(&b, "%2d. %s%s%s  %s%s%s\n", i+1,
			p.Title, Truncate(title, 60), p.Reset,
			p.Muted, RelativeTime(e.ProcessedAt, now), p.Reset)
		fmt.Fprintf(&b, "    %s\n", Truncate(e.OriginalURL, 72))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
