package render

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for reading-time labels.
const WordsPerMinute = 200

// ReadingTime formats a word count as "<n> min read".
func ReadingTime(words int) string {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	return fmt.Sprintf("%d min read", minutes)
}

// RelativeTime describes t relative to now; anything older than a week is a date.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < time.Minute {
		return "Just now"
	}

	minutes := int(diff / time.Minute)
	if minutes < 60 {
		return plural(minutes, "minute")
	}

	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}

	days := hours / 24
	if days < 7 {
		return plural(days, "day")
	}

	return t.Format("2006-01-02")
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// Truncate shortens text to maxLength runes including the "..." suffix.
func Truncate(text string, maxLength int) string {
	const suffix = "..."
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	keep := maxLength - len(suffix)
	if keep <= 0 {
		return suffix[:max(maxLength, 0)]
	}
	return string([]rune(text)[:keep]) + suffix
}
