package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"NewsSnap/internal/domain"
)

// WordsPerMinute is the reading speed behind ReadingTime.
const WordsPerMinute = 200

// Summary validates the API envelope and reshapes it into the canonical entity.
// now is used for ProcessedAt when the server sends no parsable date.
func Summary(env domain.SummaryEnvelope, now time.Time) (domain.Summary, error) {
	raw := env.Data
	if raw == nil {
		return domain.Summary{}, fmt.Errorf("normalize summary: %w", domain.ErrInvalidStructure)
	}
	if strings.TrimSpace(raw.Summary) == "" || strings.TrimSpace(raw.OriginalURL) == "" {
		return domain.Summary{}, fmt.Errorf("normalize summary: %w", domain.ErrMissingRequiredField)
	}

	out := domain.Summary{
		Summary:       raw.Summary,
		Title:         raw.Title,
		OriginalURL:   raw.OriginalURL,
		ProcessedAt:   processedAt(raw.Date, now),
		Author:        raw.Author,
		Publisher:     raw.Publisher,
		SummaryLength: copyInt(raw.SummaryLength),
	}

	if raw.OriginalLength != nil {
		out.WordCount = copyInt(raw.OriginalLength)
		if minutes := ReadingTime(*raw.OriginalLength); minutes > 0 {
			out.ReadingTime = &minutes
		}
	}

	return out, nil
}

// ReadingTime returns ceil(words / WordsPerMinute), or 0 for unknown counts.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

func processedAt(date string, now time.Time) time.Time {
	date = strings.TrimSpace(date)
	if date == "" {
		return now
	}
	parsed, err := dateparse.ParseAny(date)
	if err != nil {
		return now
	}
	return parsed
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
