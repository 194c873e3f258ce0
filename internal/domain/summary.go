package domain

import "time"

// SummaryRequest is created on form submit and consumed once by the executor.
type SummaryRequest struct {
	URL string `json:"url"`
}

// RawSummary is the server-shaped record returned by the summarize endpoint.
type RawSummary struct {
	OriginalURL    string   `json:"originalUrl"`
	Title          string   `json:"title"`
	Author         []string `json:"author"`
	Date           string   `json:"date"`
	Publisher      string   `json:"publisher"`
	Summary        string   `json:"summary"`
	OriginalLength *int     `json:"originalLength"`
	SummaryLength  *int     `json:"summaryLength"`
}

// SummaryEnvelope wraps RawSummary with the API status field.
type SummaryEnvelope struct {
	Status string      `json:"status"`
	Data   *RawSummary `json:"data"`
}

// Summary is the canonical entity kept in state and history.
type Summary struct {
	Summary       string    `json:"summary"`
	Title         string    `json:"title,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	Insights      []string  `json:"insights,omitempty"`
	OriginalURL   string    `json:"originalUrl"`
	ProcessedAt   time.Time `json:"processedAt"`
	WordCount     *int      `json:"wordCount,omitempty"`
	ReadingTime   *int      `json:"readingTime,omitempty"`
	Author        []string  `json:"author,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	SummaryLength *int      `json:"summaryLength,omitempty"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
