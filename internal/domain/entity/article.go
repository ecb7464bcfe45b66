// Package entity defines the core domain entities for the news aggregator.
// It contains Source, Article and the response Envelope, the article id
// derivation, and the domain errors shared by every layer.
package entity

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTitle is used when a document provides no usable title.
const DefaultTitle = "Untitled"

// slugMaxRunes is the number of title characters that feed into an article id.
const slugMaxRunes = 40

// Article is a single normalized entry taken from a feed or a listing page.
// PublishedAt is kept exactly as the origin document wrote it.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
	Summary     string `json:"summary"`
	SourceID    string `json:"sourceId"`
	SourceName  string `json:"sourceName"`
}

// Envelope is the response of one aggregation request.
type Envelope struct {
	UpdatedAt time.Time         `json:"updatedAt"`
	Sources   []PublicSource    `json:"sources"`
	Articles  []Article         `json:"articles"`
	Errors    map[string]string `json:"errors"`
}

// NewArticle builds an Article for src at the given extraction index.
// An empty title is replaced with DefaultTitle before the id is derived.
func NewArticle(src *Source, index int, title, link, publishedAt, summary string) Article {
	if title == "" {
		title = DefaultTitle
	}
	return Article{
		ID:          ArticleID(src.ID, index, title),
		Title:       title,
		Link:        link,
		PublishedAt: publishedAt,
		Summary:     summary,
		SourceID:    src.ID,
		SourceName:  src.Name,
	}
}

// ArticleID returns "<sourceID>-<index>-<slug>" where slug is derived from
// the first 40 characters of title.
func ArticleID(sourceID string, index int, title string) string {
	return sourceID + "-" + strconv.Itoa(index) + "-" + Slug(title, slugMaxRunes)
}

// Slug truncates s to max runes and collapses every run of characters outside
// [A-Za-z0-9] into a single hyphen. Case is preserved and leading or trailing
// hyphens are kept.
func Slug(s string, max int) string {
	runes := []rune(s)
	if max >= 0 && len(runes) > max {
		runes = runes[:max]
	}

	var b strings.Builder
	b.Grow(len(runes))
	inRun := false
	for _, r := range runes {
		if isSlugRune(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
