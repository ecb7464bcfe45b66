package news

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"drupal-news/internal/domain/entity"
)

// epoch is the sort key of a date that cannot be read.
var epoch = time.Unix(0, 0).UTC()

// PublishedTime interprets a raw publication date. Unreadable values yield the
// Unix epoch. Values without a zone are read as UTC.
func PublishedTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return epoch
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return epoch
	}
	return t
}

// SortByPublished orders articles newest first in place. Each date is parsed
// once. Articles with equal keys keep their relative order.
func SortByPublished(articles []entity.Article) {
	type keyed struct {
		at      time.Time
		article entity.Article
	}
	items := make([]keyed, len(articles))
	for i, a := range articles {
		items[i] = keyed{at: PublishedTime(a.PublishedAt), article: a}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	for i := range items {
		articles[i] = items[i].article
	}
}
