package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"drupal-news/internal/domain/entity"
)

// DefaultLimit bounds the number of articles taken from one listing page.
const DefaultLimit = 12

// fallbackContainer is tried when none of the list selectors match.
const fallbackContainer = "article"

// Default selector cascades. A source overrides each list independently.
var (
	DefaultListSelectors    = []string{"article", ".view-content .views-row", ".views-row"}
	DefaultTitleSelectors   = []string{"h2 a", "h3 a", ".title a", "a"}
	DefaultDateSelectors    = []string{"time[datetime]", "time", ".date", ".submitted"}
	DefaultSummarySelectors = []string{".field--name-body", ".summary", "p"}
)

type selectorSet struct {
	list, title, date, summary []string
}

func selectorsFor(src *entity.Source) selectorSet {
	pick := func(override, def []string) []string {
		if len(override) > 0 {
			return override
		}
		return def
	}
	return selectorSet{
		list:    pick(src.ListSelectors, DefaultListSelectors),
		title:   pick(src.TitleSelectors, DefaultTitleSelectors),
		date:    pick(src.DateSelectors, DefaultDateSelectors),
		summary: pick(src.SummarySelectors, DefaultSummarySelectors),
	}
}

// ExtractArticles scrapes up to limit articles for src from a listing page.
// A non-positive limit means DefaultLimit.
//
// Containers come from the first list selector that matches anything; their
// matches are never merged with those of later selectors. A container needs
// a title and a link to produce an article, and ids count accepted articles
// only, so skipped containers leave no gaps.
func ExtractArticles(raw string, src *entity.Source, limit int) ([]entity.Article, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &entity.ParseError{Format: "html", Err: err}
	}

	sel := selectorsFor(src)
	containers := findContainers(doc, sel.list)

	articles := make([]entity.Article, 0, min(limit, containers.Length()))
	containers.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := probeText(item, sel.title)
		if title == "" {
			return true
		}
		link := entity.ResolveURL(src.SiteURL, probeAttr(item, sel.title, "href"))
		if link == "" {
			return true
		}

		articles = append(articles, entity.NewArticle(src, len(articles),
			title, link, probeDate(item, sel.date), probeText(item, sel.summary)))
		return len(articles) < limit
	})

	return articles, nil
}

func findContainers(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if found := doc.Find(s); found.Length() > 0 {
			return found
		}
	}
	return doc.Find(fallbackContainer)
}

// probeText returns the collapsed text of the first element matched by the
// first selector whose first match has non-empty text.
func probeText(root *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		node := root.Find(s).First()
		if node.Length() == 0 {
			continue
		}
		if text := CollapseWhitespace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

func probeAttr(root *goquery.Selection, selectors []string, attr string) string {
	for _, s := range selectors {
		node := root.Find(s).First()
		if node.Length() == 0 {
			continue
		}
		if v, ok := node.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}

// probeDate prefers a datetime attribute over the element text.
func probeDate(root *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		node := root.Find(s).First()
		if node.Length() == 0 {
			continue
		}
		if v, ok := node.Attr("datetime"); ok && v != "" {
			return v
		}
		if text := CollapseWhitespace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}
