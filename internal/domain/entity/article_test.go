package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"simple title", "Hello World", 40, "Hello-World"},
		{"case preserved", "Drupal CMS 2.0", 40, "Drupal-CMS-2-0"},
		{"punctuation runs collapse", "What's new?!  In Drupal", 40, "What-s-new-In-Drupal"},
		{"leading and trailing kept", "  spaced  ", 40, "-spaced-"},
		{"truncated before slugging", "abcdefghij", 4, "abcd"},
		{"non-ascii collapses", "Café – déjà vu", 40, "Caf-d-j-vu"},
		{"empty", "", 40, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input, tt.max))
		})
	}
}

func TestSlug_UsesFirstFortyCharacters(t *testing.T) {
	title := "An unusually long article title that keeps going past forty characters"
	assert.Equal(t, "An-unusually-long-article-title-that-kee", Slug(title, 40))
}

func TestArticleID(t *testing.T) {
	assert.Equal(t, "dries-0-Second-Post", ArticleID("dries", 0, "Second Post"))
	assert.Equal(t, "planet-drupal-11-Untitled", ArticleID("planet-drupal", 11, "Untitled"))
}

func TestNewArticle(t *testing.T) {
	src := &Source{ID: "dries", Name: "Dries Buytaert"}

	t.Run("copies source identity", func(t *testing.T) {
		a := NewArticle(src, 1, "Hello World", "https://dri.es/hello", "Wed, 02 Oct 2024 10:00:00 GMT", "body")
		assert.Equal(t, Article{
			ID:          "dries-1-Hello-World",
			Title:       "Hello World",
			Link:        "https://dri.es/hello",
			PublishedAt: "Wed, 02 Oct 2024 10:00:00 GMT",
			Summary:     "body",
			SourceID:    "dries",
			SourceName:  "Dries Buytaert",
		}, a)
	})

	t.Run("empty title defaults", func(t *testing.T) {
		a := NewArticle(src, 0, "", "https://dri.es/", "", "")
		assert.Equal(t, DefaultTitle, a.Title)
		assert.Equal(t, "dries-0-Untitled", a.ID)
	})
}
