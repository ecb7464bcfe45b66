package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	ids := make([]string, 0, reg.Len())
	for _, s := range reg.All() {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.FeedURL, "source %s", s.ID)
		assert.NotEmpty(t, s.PageURL, "source %s", s.ID)
	}
	assert.Equal(t, []string{
		"dries", "planet-drupal", "lullabot", "drupalize", "pantheon", "drupaleasy", "wimleers",
	}, ids)

	dries, ok := reg.Get("dries")
	require.True(t, ok)
	assert.Equal(t, "https://dri.es/rss.xml", dries.FeedURL)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	src := entity.Source{ID: "a", Name: "A", SiteURL: "https://a.example/", FeedURL: "https://a.example/rss"}

	_, err := registry.New([]entity.Source{src, src})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate source id "a"`)
}

func TestNew_RejectsInvalidSource(t *testing.T) {
	_, err := registry.New([]entity.Source{{ID: "a", Name: "A", SiteURL: "https://a.example/"}})
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	t.Run("empty filter returns all", func(t *testing.T) {
		got, err := reg.Resolve("")
		require.NoError(t, err)
		assert.Len(t, got, reg.Len())
	})

	t.Run("known id returns one", func(t *testing.T) {
		got, err := reg.Resolve("lullabot")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lullabot", got[0].Name)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		got, err := reg.Resolve("does-not-exist")
		assert.ErrorIs(t, err, entity.ErrUnknownSource)
		assert.Nil(t, got)
	})
}

func TestAll_ReturnsCopy(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	all := reg.All()
	all[0].Name = "changed"

	again, _ := reg.Get(all[0].ID)
	assert.NotEqual(t, "changed", again.Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	doc := `sources:
  - id: example
    name: Example
    site_url: https://example.com/
    page_url: https://example.com/blog
    list_selectors: [".post"]
    title_selectors: ["h1 a"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	reg, err := registry.Load(path)
	require.NoError(t, err)

	src, ok := reg.Get("example")
	require.True(t, ok)
	assert.Equal(t, []string{".post"}, src.ListSelectors)
	assert.Equal(t, []string{"h1 a"}, src.TitleSelectors)
	assert.Empty(t, src.FeedURL)
	assert.Nil(t, src.DateSelectors)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := registry.Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources: [:"), 0o600))
		_, err := registry.Load(path)
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o600))
		_, err := registry.Load(path)
		assert.Error(t, err)
	})
}

func TestFromFileOrDefault(t *testing.T) {
	reg, err := registry.FromFileOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())
}
